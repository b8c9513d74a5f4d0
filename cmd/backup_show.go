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

var backupShowJSON bool

var backupShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the repositories captured in a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		svc := backup.NewService(store, nil, slog.Default())

		b, err := svc.Get(args[0])
		if err != nil {
			return err
		}

		if b == nil {
			return fmt.Errorf("backup %s does not exist", args[0])
		}

		if backupShowJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(b)
		}

		fmt.Println(cli.BackupLine(&b.Meta))
		fmt.Println()

		for i := range b.Repositories {
			fmt.Println(cli.RepoLine(&b.Repositories[i]))
		}

		return nil
	},
}

func init() {
	backupShowCmd.Flags().BoolVar(&backupShowJSON, "json", false, "output as JSON")

	backupCmd.AddCommand(backupShowCmd)
}
