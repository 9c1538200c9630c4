package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// SearchCmd returns the search command
func SearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find journal entries similar to a query",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}

	cmd.Flags().IntP("limit", "n", 10, "Maximum number of files to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	env, err := openLocalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	results, err := env.search.Search(ctx, query, limit)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("no results")
		return nil
	}

	for i, result := range results {
		snippet := result.BestChunkText
		if len(snippet) > 120 {
			snippet = snippet[:120] + "..."
		}
		fmt.Printf("%2d. %s (score %.3f)\n    %s\n", i+1, result.FileName, result.Score, snippet)
	}
	return nil
}
