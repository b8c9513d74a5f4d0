package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/starkeep/internal/cli"
)

var unstarCmd = &cobra.Command{
	Use:   "unstar <owner>/<repo>",
	Short: "Remove a star from a repository",
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

		if err := client.Unstar(ctx, owner, name); err != nil {
			return err
		}

		fmt.Println(cli.Success("Unstarred %s/%s", owner, name))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(unstarCmd)
}
