package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/starkeep/internal/cli"
)

var starredCmd = &cobra.Command{
	Use:   "starred <owner>/<repo>",
	Short: "Check whether you have starred a repository",
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

		starred, err := client.IsStarred(ctx, owner, name)
		if err != nil {
			return err
		}

		if starred {
			fmt.Println(cli.Success("%s/%s is starred", owner, name))
		} else {
			fmt.Println(cli.Failure("%s/%s is not starred", owner, name))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(starredCmd)
}
