package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/starkeep/internal/cli"
)

var repoJSON bool

var repoCmd = &cobra.Command{
	Use:   "repo <owner>/<repo>",
	Short: "Show repository details",
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

		repo, err := client.GetRepo(ctx, owner, name)
		if err != nil {
			return err
		}

		if repo == nil {
			return fmt.Errorf("repository %s/%s not found", owner, name)
		}

		if repoJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(repo)
		}

		fmt.Println(cli.RepoLine(repo))
		fmt.Println(cli.Dim(fmt.Sprintf("forks %d · watchers %d · pushed %s",
			repo.Forks, repo.Watchers, repo.PushedAt.Format("2006-01-02"))))

		return nil
	},
}

func init() {
	repoCmd.Flags().BoolVar(&repoJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(repoCmd)
}
