package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/starkeep/internal/application"
)

var (
	flagConfig  string
	flagToken   string
	flagDB      string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Manage and back up your starred GitHub repositories",
	Long: `Starkeep is a command-line tool for managing a GitHub user's starred
repositories: listing them, starring and unstarring, and keeping immutable
point-in-time backups of the star set that can be exported, imported, and
restored across machines.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default <appdata>/config.ini)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "GitHub API token (overrides env and config file)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to the backup database (default <appdata>/starkeep.bolt)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}
