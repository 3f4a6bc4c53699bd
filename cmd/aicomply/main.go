// Command aicomply classifies AI system descriptions from the command line.
package main

import (
	"os"

	"github.com/JaimeStill/aicomply/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
