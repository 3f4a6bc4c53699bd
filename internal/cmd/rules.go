package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/aicomply/internal/risk"
)

type ruleRow struct {
	ID       string        `json:"id"`
	Category risk.Category `json:"category"`
	Weight   int           `json:"weight"`
	Reason   string        `json:"reason"`
	Action   string        `json:"action"`
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the classification rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			rules := risk.DefaultRules()
			out := cmd.OutOrStdout()

			if format == formatJSON {
				rows := make([]ruleRow, len(rules))
				for i, r := range rules {
					rows[i] = ruleRow{ID: r.ID, Category: r.Category, Weight: r.Weight, Reason: r.Reason, Action: r.Action}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			writeRules(out, stylesFor(out), rules)
			return nil
		},
	}
}

func writeRules(w io.Writer, s *styles, rules []risk.Rule) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, s.header.Render("ID")+"\t"+s.header.Render("CATEGORY")+"\t"+s.header.Render("WEIGHT")+"\t"+s.header.Render("REASON"))
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, s.badge(r.Category), r.Weight, r.Reason)
	}
	tw.Flush()
}
