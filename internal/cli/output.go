package cli

import (
	"encoding/json"
	"fmt"
)

// printJSON writes v as a single JSON line to stdout.
func printJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Printf("failed to encode output: %v", err)
		return
	}
	fmt.Println(string(data))
}
