package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/starkeep/internal/cli"
	"github.com/inovacc/starkeep/internal/gh"
)

var (
	listPerPage   int
	listSort      string
	listDirection string
	listJSON      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your starred repositories",
	Long:  `Fetches every page of the authenticated user's starred repositories and prints them in the order the platform returns them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, cfg, err := newAPIClient(ctx)
		if err != nil {
			return err
		}

		perPage := listPerPage
		if perPage == 0 {
			perPage = cfg.PerPage
		}

		repos, err := client.ListAllStarred(ctx, gh.ListOptions{
			PerPage:   perPage,
			Sort:      listSort,
			Direction: listDirection,
		})
		if err != nil {
			return err
		}

		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(repos)
		}

		for i := range repos {
			fmt.Println(cli.RepoLine(&repos[i]))
		}

		fmt.Println(cli.Dim(fmt.Sprintf("%d starred repositories", len(repos))))

		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listPerPage, "per-page", 0, "items per page (max 100)")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort key (created, updated)")
	listCmd.Flags().StringVar(&listDirection, "direction", "", "sort direction (asc, desc)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(listCmd)
}
