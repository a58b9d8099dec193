package cli

import (
	"github.com/spf13/cobra"

	"docsearch/config"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Verify the configured storage backend",
	Long: `Open the storage backend named in the configuration and report whether
it is usable. The memory backend always succeeds.

Prints {"success": bool}.`,
	Args: cobra.NoArgs,
	RunE: runConnect,
}

func init() {
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		logger.Printf("Error connecting to store: %v", err)
		printJSON(map[string]any{"success": false})
		return nil
	}
	defer st.Close()

	if st.Persistent() {
		logger.Printf("Using persistent storage at %s", config.IndexDBPath(rootDir))
	} else {
		logger.Printf("Using fallback mode - transient in-memory storage")
	}

	printJSON(map[string]any{"success": true})
	return nil
}
