package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trtslyr/islajournal/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "islad",
		Short: "Isla journal daemon and CLI",
		Long:  "Local semantic retrieval over journal files: import, search, and ask questions entirely offline",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.ImportCmd())
	rootCmd.AddCommand(cli.SearchCmd())
	rootCmd.AddCommand(cli.QueryCmd())
	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.RemoveCmd())
	rootCmd.AddCommand(cli.ReindexCmd())
	rootCmd.AddCommand(cli.ProfileCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
