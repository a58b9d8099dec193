package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"docsearch/config"
	"docsearch/internal/usecase"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show persistent index statistics",
	Long: `Report the state of the persistent index: status, index name, store
path, and document/vector counts. Without a persistent backend there is
nothing to report and {"error": "Not connected"} is printed.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		printJSON(map[string]any{"error": err.Error()})
		return nil
	}
	defer st.Close()

	statsUC := usecase.NewStatsUseCase(st, cfg.Store.IndexName, config.IndexDBPath(rootDir))

	stats, err := statsUC.Stats()
	if err != nil {
		if errors.Is(err, usecase.ErrNotConnected) {
			printJSON(map[string]any{"error": "Not connected"})
		} else {
			printJSON(map[string]any{"error": err.Error()})
		}
		return nil
	}

	printJSON(stats)
	return nil
}
