package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/inovacc/starkeep/internal/backup"
	"github.com/inovacc/starkeep/internal/cli"
)

var (
	backupCreateDescription string
	backupCreateTags        []string
	backupCreateOverwrite   bool
)

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a backup of your current star set",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, _, err := newAPIClient(ctx)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		svc := backup.NewService(store, client, slog.Default())

		meta, err := svc.Create(ctx, backup.CreateOptions{
			Description: backupCreateDescription,
			Tags:        backupCreateTags,
			Overwrite:   backupCreateOverwrite,
		})
		if err != nil {
			return err
		}

		fmt.Println(cli.Success("Created backup %s with %d repositories", meta.ID, meta.Count))

		return nil
	},
}

func init() {
	backupCreateCmd.Flags().StringVarP(&backupCreateDescription, "description", "d", "", "free-text description")
	backupCreateCmd.Flags().StringArrayVarP(&backupCreateTags, "tag", "t", nil, "tag (repeatable)")
	backupCreateCmd.Flags().BoolVar(&backupCreateOverwrite, "overwrite", false, "replace the most recent backup instead of creating a new one")

	backupCmd.AddCommand(backupCreateCmd)
}
