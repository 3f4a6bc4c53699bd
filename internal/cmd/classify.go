package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/aicomply/internal/risk"
)

// report is the JSON form of a classify run.
type report struct {
	Name string `json:"name"`
	risk.Result
}

func newClassifyCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "classify FILE",
		Short: "Classify a system described in a YAML or JSON file",
		Long: `Classify reads one AI system description and prints its risk assessment.
FILE may be YAML or JSON; "-" reads standard input. Field names follow the
API form: name, description, owner, department, vendor, data_categories,
affected_users, use_cases, domains, biometric_identification, emotion_inference,
human_oversight, transparency_provided.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if threshold <= 0 || threshold > 1 {
				return fmt.Errorf("threshold must be in (0, 1], got %v", threshold)
			}

			sys, err := readSystem(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			classifier := risk.New(risk.WithDowngradeThreshold(threshold))
			result := classifier.Classify(sys)

			out := cmd.OutOrStdout()
			if format == formatJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report{Name: sys.Name, Result: result})
			}
			writeResult(out, stylesFor(out), sys.Name, result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", risk.DefaultDowngradeThreshold,
		"Completeness below which confidence is forced to low")
	return cmd
}

// readSystem decodes path (or stdin for "-"). JSON is accepted as YAML.
// Unknown keys and out-of-vocabulary tags are rejected so a typo is not
// silently ignored.
func readSystem(stdin io.Reader, path string) (risk.System, error) {
	var sys risk.System

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return sys, fmt.Errorf("open system file: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sys); err != nil {
		if errors.Is(err, io.EOF) {
			return sys, errors.New("system file is empty")
		}
		return sys, fmt.Errorf("parse system file: %w", err)
	}
	if err := sys.CheckTags(); err != nil {
		return sys, fmt.Errorf("invalid system file: %w", err)
	}
	return sys, nil
}

func writeResult(w io.Writer, s *styles, name string, r risk.Result) {
	if name == "" {
		name = "(unnamed system)"
	}

	fmt.Fprintln(w, s.header.Render(name))
	fmt.Fprintf(w, "  %s %s\n", s.label.Render("Category:    "), s.badge(r.Category))
	fmt.Fprintf(w, "  %s %s\n", s.label.Render("Confidence:  "), r.Confidence)

	completeness := fmt.Sprintf("%d%%", r.CompletenessPercent())
	if len(r.MissingFields) > 0 {
		completeness += s.muted.Render(" (missing: " + strings.Join(r.MissingFields, ", ") + ")")
	}
	fmt.Fprintf(w, "  %s %s\n", s.label.Render("Completeness:"), completeness)

	writeList(w, s, "Reasoning", r.Reasoning)
	writeList(w, s, "Actions", r.Actions)
}

func writeList(w io.Writer, s *styles, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.header.Render(title))
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
