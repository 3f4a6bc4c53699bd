package risk

import "strings"

// Completeness reports how much of a system's identity and context data is filled in.
type Completeness struct {
	Score         float64  `json:"score"`
	MissingFields []string `json:"missing_fields"`
}

type field struct {
	label     string
	populated func(s *System) bool
}

func text(get func(s *System) string) func(s *System) bool {
	return func(s *System) bool {
		return strings.TrimSpace(get(s)) != ""
	}
}

func tags(get func(s *System) []string) func(s *System) bool {
	return func(s *System) bool {
		return len(get(s)) > 0
	}
}

// checklist order determines the order of MissingFields.
var checklist = []field{
	{"Name", text(func(s *System) string { return s.Name })},
	{"Description", text(func(s *System) string { return s.Description })},
	{"Owner", text(func(s *System) string { return s.Owner })},
	{"Department", text(func(s *System) string { return s.Department })},
	{"Vendor", text(func(s *System) string { return s.Vendor })},
	{"Data Categories", tags(func(s *System) []string { return s.DataCategories })},
	{"Affected Users", tags(func(s *System) []string { return s.AffectedUsers })},
	{"Use Cases", tags(func(s *System) []string { return s.UseCases })},
	{"Domains", tags(func(s *System) []string { return s.Domains })},
}

// ComputeCompleteness scores s against the fixed checklist of important fields.
// Score is populated/total; a fully populated system scores exactly 1.
func ComputeCompleteness(s System) Completeness {
	missing := make([]string, 0, len(checklist))
	for _, f := range checklist {
		if !f.populated(&s) {
			missing = append(missing, f.label)
		}
	}

	populated := len(checklist) - len(missing)
	return Completeness{
		Score:         float64(populated) / float64(len(checklist)),
		MissingFields: missing,
	}
}
