package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/starkeep/internal/backup"
	"github.com/inovacc/starkeep/internal/cli"
)

var backupListJSON bool

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		svc := backup.NewService(store, nil, slog.Default())

		metas, err := svc.List()
		if err != nil {
			return err
		}

		if backupListJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(metas)
		}

		if len(metas) == 0 {
			fmt.Println(cli.Dim("no backups yet"))

			return nil
		}

		for i := range metas {
			fmt.Println(cli.BackupLine(&metas[i]))
		}

		return nil
	},
}

func init() {
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "output as JSON")

	backupCmd.AddCommand(backupListCmd)
}
