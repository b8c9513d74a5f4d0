package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/inovacc/starkeep/internal/backup"
	"github.com/inovacc/starkeep/internal/cli"
)

var (
	backupImportDescription string
	backupImportTags        []string
	backupImportOverwrite   bool
)

var backupImportCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import a backup from a JSON file",
	Long: `Reads a previously exported backup file and stores it as a new backup.
By default the import gets a fresh id so existing backups are never replaced;
use --overwrite to keep the file's id and fully replace any backup under it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		svc := backup.NewService(store, nil, slog.Default())

		meta, err := svc.Import(args[0], backup.ImportOptions{
			Description: backupImportDescription,
			Tags:        backupImportTags,
			Overwrite:   backupImportOverwrite,
		})
		if err != nil {
			return err
		}

		fmt.Println(cli.Success("Imported backup %s with %d repositories", meta.ID, meta.Count))

		return nil
	},
}

func init() {
	backupImportCmd.Flags().StringVarP(&backupImportDescription, "description", "d", "", "override the file's description")
	backupImportCmd.Flags().StringArrayVarP(&backupImportTags, "tag", "t", nil, "override the file's tags (repeatable)")
	backupImportCmd.Flags().BoolVar(&backupImportOverwrite, "overwrite", false, "keep the file's backup id, replacing any stored backup with that id")

	backupCmd.AddCommand(backupImportCmd)
}
