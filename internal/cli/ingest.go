package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docsearch/internal/adapter/fs"
	"docsearch/internal/adapter/splitter"
	"docsearch/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Index documents from files in a directory",
	Long: `Walk a directory, split matching files into section documents, and
build the index from them. Include/exclude patterns and section size
come from the ingest configuration. Any previous index content is
replaced.

Prints {"success": bool, "documents": n}.

Examples:
  docsearch ingest ./docs
  docsearch ingest /path/to/proposals`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	st, err := openStore()
	if err != nil {
		logger.Printf("Error ingesting documents: %v", err)
		printJSON(map[string]any{"success": false, "documents": 0})
		return nil
	}
	defer st.Close()

	ingestUC := usecase.NewIngestUseCase(
		fs.NewWalker(cfg.Ingest.Includes, cfg.Ingest.Excludes),
		splitter.New(cfg.Ingest.SectionLines, cfg.Ingest.SectionOverlap),
		usecase.NewIndexUseCase(st, embedder, cfg.Embedding.BatchSize),
	)

	logger.Printf("Scanning %s...", path)

	// Total document count is unknown until files are split, so the
	// progress bar initializes on the first callback.
	var progress usecase.ProgressFunc
	progress = func(done, total int) {
		progress = embedProgress(total)
		if progress != nil {
			progress(done, total)
		}
	}

	result, warnings, err := ingestUC.Ingest(path, func(done, total int) {
		progress(done, total)
	})
	if err != nil {
		logger.Printf("Error ingesting documents: %v", err)
		printJSON(map[string]any{"success": false, "documents": 0})
		return nil
	}

	recordSchema(st)

	for _, w := range warnings {
		logger.Printf("Warning: %s", w)
	}
	logger.Printf("Indexed %d documents (%d vectors)", result.Documents, result.Vectors)

	printJSON(map[string]any{"success": true, "documents": result.Documents})
	return nil
}
