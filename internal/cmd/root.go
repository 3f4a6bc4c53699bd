// Package cmd implements the aicomply command line, an offline front end to
// the risk classifier.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	formatTerminal = "terminal"
	formatJSON     = "json"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "aicomply",
		Short: "Classify AI systems against EU AI Act risk tiers",
		Long: `aicomply evaluates a description of an AI system against the built-in
rule table and reports its risk category, confidence, the reasons each
rule fired, and the compliance actions that follow.

Examples:
  aicomply classify system.yaml
  aicomply classify --format json system.json > result.json
  aicomply rules`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP("format", "f", formatTerminal, "Output format (terminal, json)")

	root.AddCommand(newClassifyCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func outputFormat(cmd *cobra.Command) (string, error) {
	f, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", err
	}
	switch f {
	case formatTerminal, formatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want terminal or json)", f)
	}
}
