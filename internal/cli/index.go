package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"docsearch/internal/adapter/store"
	"docsearch/internal/usecase"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index documents from stdin",
	Long: `Read a JSON array of document records from standard input, embed them
through the configured provider, and build the searchable index. Any
previous index content is replaced.

Records look like:
  [{"id": "doc-1", "content": "...", "source": "rfp.pdf", "section": "3.1", "pageNumber": 12}]

Missing fields default to empty values. Prints {"success": bool}.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		logger.Printf("Error reading documents: %v", err)
		printJSON(map[string]any{"success": false})
		return nil
	}

	var records []map[string]any
	if err := json.Unmarshal(input, &records); err != nil {
		logger.Printf("Error indexing documents: %v", err)
		printJSON(map[string]any{"success": false})
		return nil
	}

	docs := usecase.Normalize(records)

	st, err := openStore()
	if err != nil {
		logger.Printf("Error indexing documents: %v", err)
		printJSON(map[string]any{"success": false})
		return nil
	}
	defer st.Close()

	indexUC := usecase.NewIndexUseCase(st, embedder, cfg.Embedding.BatchSize)

	result, err := indexUC.Index(docs, embedProgress(len(docs)))
	if err != nil {
		logger.Printf("Error indexing documents: %v", err)
		printJSON(map[string]any{"success": false})
		return nil
	}

	recordSchema(st)

	logger.Printf("Indexed %d documents (%d vectors)", result.Documents, result.Vectors)
	printJSON(map[string]any{"success": true})
	return nil
}

// embedProgress renders a progress bar on stderr while embedding
// batches, keeping stdout clean for the result JSON.
func embedProgress(total int) usecase.ProgressFunc {
	if total == 0 {
		return nil
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
		progressbar.OptionOnCompletion(func() {
			logger.Println()
		}),
	)

	return func(done, _ int) {
		bar.Set(done)
	}
}

// recordSchema stamps a persistent store with the embedding model the
// vectors were built with.
func recordSchema(st any) {
	bolt, ok := st.(*store.BoltStore)
	if !ok {
		return
	}
	info := store.SchemaInfo{
		Version:    store.CurrentSchemaVersion,
		EmbedModel: embedder.ModelName(),
	}
	if err := bolt.SetSchemaInfo(info); err != nil {
		logger.Printf("Warning: failed to record schema info: %v", err)
	}
}
