package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/inovacc/starkeep/internal/backup"
	"github.com/inovacc/starkeep/internal/cli"
)

var backupExportCmd = &cobra.Command{
	Use:   "export <id> <path>",
	Short: "Export a backup to a JSON file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		svc := backup.NewService(store, nil, slog.Default())

		if err := svc.Export(args[0], args[1]); err != nil {
			return err
		}

		fmt.Println(cli.Success("Exported backup %s to %s", args[0], args[1]))

		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
}
