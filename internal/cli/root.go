package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"docsearch/config"
	"docsearch/internal/adapter/embedding"
	"docsearch/internal/adapter/llm"
	"docsearch/internal/adapter/store"
	"docsearch/internal/domain"
	"docsearch/internal/port"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string

	embedder port.Embedder
	model    port.LLM

	// Diagnostics go to stderr; stdout carries result JSON only.
	logger = log.New(os.Stderr, "", 0)
)

var rootCmd = &cobra.Command{
	Use:   "docsearch [command]",
	Short: "Index documents and search them semantically",
	Long: `docsearch indexes documents through an external embedding provider and
answers semantic search queries over them, optionally synthesizing an
answer with a language model. Results are printed as JSON.

Example usage:
  docsearch connect                     # Verify the storage backend
  cat docs.json | docsearch index       # Index documents from stdin
  docsearch search "payment terms"      # Search the index
  docsearch ingest ./docs               # Index documents from files
  docsearch stats                       # Show persistent index stats`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Bare invocation prints usage; providers are not needed for that.
		if cmd.Parent() == nil && len(args) == 0 {
			return nil
		}

		// Provider construction happens before any command runs so a
		// missing API key aborts immediately as a configuration error.
		embedder, err = buildEmbedder(cfg)
		if err != nil {
			return domain.E(domain.KindConfig, "startup", err)
		}

		if cfg.LLM.Enabled {
			model, err = llm.NewClient(cfg.LLM.APIKeyEnv, cfg.LLM.Model, cfg.LLM.BaseURL, cfg.LLM.Temperature)
			if err != nil {
				return domain.E(domain.KindConfig, "startup", err)
			}
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("missing command")
		}
		// Unknown commands are reported but are not an error exit.
		fmt.Printf("Unknown command: %s\n", args[0])
		return nil
	},
}

func Execute() {
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		logger.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func init() {
	// Usage and help are part of the tool's observable output.
	rootCmd.SetOut(os.Stdout)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docsearch.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func buildEmbedder(cfg *config.Config) (port.Embedder, error) {
	e := cfg.Embedding
	switch e.Provider {
	case "openai":
		return embedding.NewClient(e.APIKeyEnv, e.Model, e.BaseURL)
	case "deepseek":
		return embedding.NewDeepSeekClient(e.APIKeyEnv, e.Model)
	case "jina":
		return embedding.NewJinaClient(e.APIKeyEnv, e.Model)
	case "ollama":
		return embedding.NewOllamaClient(e.Model, e.BaseURL)
	case "mock":
		return embedding.NewMockEmbedder(e.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", e.Provider)
	}
}

// openStore opens the backend named by the configuration. The choice
// is explicit; no fallback substitution happens here.
func openStore() (port.IndexStore, error) {
	switch cfg.Store.Backend {
	case "memory", "":
		return store.NewMemoryStore(), nil
	case "bolt":
		if err := config.EnsureDataDir(rootDir); err != nil {
			return nil, domain.E(domain.KindStore, "open", err)
		}
		st, err := store.NewBoltStore(config.IndexDBPath(rootDir))
		if err != nil {
			return nil, domain.E(domain.KindStore, "open", err)
		}
		return st, nil
	default:
		return nil, domain.E(domain.KindConfig, "open",
			fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend))
	}
}
