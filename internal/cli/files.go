package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List imported journal files",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := openLocalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	files, err := env.files.List(ctx)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Println("no files imported")
		return nil
	}

	for _, f := range files {
		status := "indexed"
		if f.NeedsIndexing() {
			status = "stale"
		}
		fmt.Printf("%s  %-30s %-10s %s\n", f.ID, f.Name, status, f.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// RemoveCmd returns the remove command
func RemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file-id>",
		Short: "Remove a journal file and its embeddings",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := openLocalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.indexer.RemoveFile(ctx, args[0]); err != nil {
		return err
	}

	fmt.Printf("removed %s\n", args[0])
	return nil
}

// ReindexCmd returns the reindex command
func ReindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex [file-id]",
		Short: "Rebuild embeddings for one file or every stale file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReindex,
	}
}

func runReindex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := openLocalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	if len(args) == 1 {
		if err := env.indexer.ReindexFile(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("reindexed %s\n", args[0])
		return nil
	}

	stale, err := env.files.ListStale(ctx)
	if err != nil {
		return err
	}
	for _, f := range stale {
		if err := env.indexer.ReindexFile(ctx, f.ID); err != nil {
			return fmt.Errorf("failed to reindex %s: %w", f.Name, err)
		}
		fmt.Printf("reindexed %s\n", f.Name)
	}
	fmt.Printf("reindexed %d files\n", len(stale))
	return nil
}
