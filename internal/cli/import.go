package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/trtslyr/islajournal/internal/domain"
)

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <path>...",
		Short: "Import journal files and build their embeddings",
		Long:  "Import one or more files (or directories of .md/.txt files) into the journal index",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runImport,
	}

	cmd.Flags().String("folder", "", "Logical folder to group the imported files under")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	folder, _ := cmd.Flags().GetString("folder")

	env, err := openLocalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext == ".md" || ext == ".txt" {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", arg, err)
		}
	}

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}

		f := domain.NewJournalFile(
			uuid.NewString(),
			filepath.Base(path),
			abs,
			folder,
			string(content),
			time.Now().UTC(),
		)
		if err := domain.ValidateJournalFile(f); err != nil {
			return fmt.Errorf("refusing to import %s: %w", path, err)
		}
		if err := env.files.Upsert(ctx, f); err != nil {
			return fmt.Errorf("failed to store %s: %w", path, err)
		}
		if err := env.indexer.IndexFile(ctx, f.ID, f.Content); err != nil {
			return fmt.Errorf("failed to index %s: %w", path, err)
		}

		fmt.Printf("imported %s (%s)\n", f.Name, f.ID)
	}

	fmt.Printf("imported %d files\n", len(paths))
	return nil
}
