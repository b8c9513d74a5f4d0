package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/inovacc/starkeep/internal/backup"
	"github.com/inovacc/starkeep/internal/cli"
)

var backupDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		svc := backup.NewService(store, nil, slog.Default())

		deleted, err := svc.Delete(args[0])
		if err != nil {
			return err
		}

		if !deleted {
			fmt.Println(cli.Failure("backup %s does not exist", args[0]))

			return nil
		}

		fmt.Println(cli.Success("Deleted backup %s", args[0]))

		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupDeleteCmd)
}
