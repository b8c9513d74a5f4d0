package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/starkeep/internal/cli"
)

var starCmd = &cobra.Command{
	Use:   "star <owner>/<repo>",
	Short: "Star a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, name, err := parseRepoArg(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		client, _, err := newAPIClient(ctx)
		if err != nil {
			return err
		}

		if err := client.Star(ctx, owner, name); err != nil {
			return err
		}

		fmt.Println(cli.Success("Starred %s/%s", owner, name))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(starCmd)
}
