package cmd

import (
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage backups of your star set",
	Long: `Backups are immutable point-in-time snapshots of your starred repositories,
stored in a local embedded database. They can be listed, inspected, deleted,
and moved between machines as JSON files via export and import.`,
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
