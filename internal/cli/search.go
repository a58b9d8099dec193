package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docsearch/internal/adapter/retriever"
	"docsearch/internal/adapter/store"
	"docsearch/internal/domain"
	"docsearch/internal/usecase"
)

var (
	searchTopK int
	searchText bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed documents",
	Long: `Search the index for documents relevant to the query.

Prints {"results": [...]}. An absent index yields an empty result list.
When llm.enabled is set, an "answer" field synthesized from the sources
is included.

Examples:
  docsearch search "payment terms"
  docsearch search "delivery schedule" --top-k 10
  docsearch search "security requirements" --text`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchText, "text", false, "human-readable output instead of JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	topK := cfg.Search.TopK
	if searchTopK > 0 {
		topK = searchTopK
	}

	st, err := openStore()
	if err != nil {
		logger.Printf("Error searching: %v", err)
		printSearchOutput(nil, "")
		return nil
	}
	defer st.Close()

	if stale, reason := indexStale(st); stale {
		logger.Printf("Index unusable: %s. Run 'docsearch index' to rebuild.", reason)
		printSearchOutput(nil, "")
		return nil
	}

	searchUC := usecase.NewSearchUseCase(
		st,
		retriever.NewSemanticRetriever(st, embedder),
		model,
		cfg.Search.MinScore,
	)

	answer, err := searchUC.Answer(query, topK)
	if err != nil {
		logger.Printf("Error searching: %v", err)
		printSearchOutput(nil, "")
		return nil
	}

	if searchText {
		printSearchText(query, answer)
		return nil
	}

	printSearchOutput(answer.Results, answer.Text)
	return nil
}

// indexStale reports whether a persistent index was built with an
// incompatible schema or embedding model.
func indexStale(st any) (bool, string) {
	bolt, ok := st.(*store.BoltStore)
	if !ok {
		return false, ""
	}
	stale, reason, err := bolt.NeedsRebuild(embedder.ModelName())
	if err != nil {
		return false, ""
	}
	return stale, reason
}

func printSearchOutput(results []domain.SearchResult, answer string) {
	if results == nil {
		results = []domain.SearchResult{}
	}
	out := map[string]any{"results": results}
	if answer != "" {
		out["answer"] = answer
	}
	printJSON(out)
}

func printSearchText(query string, answer domain.Answer) {
	if len(answer.Results) == 0 {
		fmt.Println("No results found.")
		return
	}

	heading := color.New(color.FgCyan, color.Bold)
	meta := color.New(color.FgYellow)

	heading.Printf("Found %d results for: %s\n\n", len(answer.Results), query)
	for i, r := range answer.Results {
		meta.Printf("--- [%d] %v / %v (score: %.3f) ---\n",
			i+1, r.Metadata["source"], r.Metadata["section"], r.Score)
		text := r.Content
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}

	if answer.Text != "" {
		heading.Println("Answer:")
		fmt.Println(answer.Text)
	}
}
