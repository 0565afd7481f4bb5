// swissdamed downloads the Swiss medical device (UDI) register, exports it to
// CSV/SQLite, diffs exports and cross-references products with the MiGeL list.
package main

import (
	"os"

	"swissdamed-migel/cmd/main/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
