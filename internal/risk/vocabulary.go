package risk

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Tag vocabularies accepted for the set-valued System fields.
var (
	DataCategories = []string{"none", "personal", "sensitive", "employee", "children"}
	AffectedUsers  = []string{"customers", "employees", "public", "children"}
	UseCases       = []string{
		"content-generation",
		"recommendations",
		"scoring",
		"decision-support",
		"automated-decisions",
	}
	Domains = []string{
		"employment",
		"credit",
		"education",
		"housing",
		"health",
		"essential-services",
		"other",
	}
)

// HighRiskDomains are the Annex III domains that make a system high-risk.
var HighRiskDomains = []string{"employment", "credit", "education", "housing", "health", "essential-services"}

// DomainLabels maps domain tags to display labels.
var DomainLabels = map[string]string{
	"employment":         "Employment",
	"credit":             "Credit / Finance",
	"education":          "Education",
	"housing":            "Housing",
	"health":             "Health",
	"essential-services": "Essential Services",
	"other":              "Other",
}

// UseCaseLabels maps use-case tags to display labels.
var UseCaseLabels = map[string]string{
	"content-generation":  "Content Generation",
	"recommendations":     "Recommendations",
	"scoring":             "Scoring / Profiling",
	"decision-support":    "Decision Support",
	"automated-decisions": "Automated Decisions",
}

// CheckTags reports every set-valued field that holds a tag outside its
// vocabulary. Classify itself accepts any tags; callers taking external input
// check first.
func (s System) CheckTags() error {
	return errors.Join(
		checkTags(s.DataCategories, DataCategories, "Data categories"),
		checkTags(s.AffectedUsers, AffectedUsers, "Affected users"),
		checkTags(s.UseCases, UseCases, "Use cases"),
		checkTags(s.Domains, Domains, "Domains"),
	)
}

func checkTags(tags, allowed []string, field string) error {
	for _, t := range tags {
		if !slices.Contains(allowed, t) {
			return fmt.Errorf("%s must be one of: %s.", field, strings.Join(allowed, ", "))
		}
	}
	return nil
}

func has(set []string, tag string) bool {
	return slices.Contains(set, tag)
}

func hasAny(set []string, tags []string) bool {
	return slices.ContainsFunc(set, func(t string) bool {
		return slices.Contains(tags, t)
	})
}
