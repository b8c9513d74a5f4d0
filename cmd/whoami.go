package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/starkeep/internal/cli"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, _, err := newAPIClient(ctx)
		if err != nil {
			return err
		}

		user, err := client.CurrentUser(ctx)
		if err != nil {
			return err
		}

		fmt.Println(cli.Header(user.Login))

		if user.Name != "" {
			fmt.Println(user.Name)
		}

		if user.Email != "" {
			fmt.Println(cli.Dim(user.Email))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
