// Package risk implements the rule-based EU AI Act risk classification engine.
// It maps the classification-relevant attributes of an AI system to a risk
// category, a confidence level, the reasoning trace that produced it, and a
// list of recommended actions. Classification is pure and deterministic: the
// same input always yields the same Result.
package risk

import (
	"fmt"
	"math"
)

// Category is the regulatory tier a system is assigned to.
type Category string

// Risk categories. CategoryUnknown is the default state of a record that has
// not been classified yet; the classifier never produces it.
const (
	CategoryProhibited  Category = "prohibited"
	CategoryHighRisk    Category = "high-risk"
	CategoryLimitedRisk Category = "limited-risk"
	CategoryMinimalRisk Category = "minimal-risk"
	CategoryUnknown     Category = "unknown"
)

// Categories lists every category in descending severity, ending with unknown.
var Categories = []Category{
	CategoryProhibited,
	CategoryHighRisk,
	CategoryLimitedRisk,
	CategoryMinimalRisk,
	CategoryUnknown,
}

// ParseCategory converts s to a Category, rejecting values outside the taxonomy.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown risk category %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the five named categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryProhibited, CategoryHighRisk, CategoryLimitedRisk, CategoryMinimalRisk, CategoryUnknown:
		return true
	}
	return false
}

// Assessable reports whether c is a category the classifier can emit.
func (c Category) Assessable() bool {
	return c.Valid() && c != CategoryUnknown
}

// Label returns the display label for c.
func (c Category) Label() string {
	switch c {
	case CategoryProhibited:
		return "Prohibited"
	case CategoryHighRisk:
		return "High Risk"
	case CategoryLimitedRisk:
		return "Limited Risk"
	case CategoryMinimalRisk:
		return "Minimal Risk"
	default:
		return "Unknown"
	}
}

// BadgeClass returns the style tag presentation layers use for c.
func (c Category) BadgeClass() string {
	switch c {
	case CategoryProhibited:
		return "badge-red"
	case CategoryHighRisk:
		return "badge-yellow"
	case CategoryLimitedRisk:
		return "badge-blue"
	case CategoryMinimalRisk:
		return "badge-green"
	default:
		return "badge-gray"
	}
}

// Confidence is a coarse three-level indicator of how trustworthy a
// classification is.
type Confidence string

// Confidence levels.
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ParseConfidence converts s to a Confidence.
func ParseConfidence(s string) (Confidence, error) {
	switch c := Confidence(s); c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return c, nil
	}
	return "", fmt.Errorf("unknown confidence %q", s)
}

// System is the classification-relevant view of an AI system record.
// Nil slices and empty strings are treated as unset.
type System struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Owner       string `json:"owner" yaml:"owner"`
	Department  string `json:"department" yaml:"department"`
	Vendor      string `json:"vendor" yaml:"vendor"`

	DataCategories []string `json:"data_categories" yaml:"data_categories"`
	AffectedUsers  []string `json:"affected_users" yaml:"affected_users"`
	UseCases       []string `json:"use_cases" yaml:"use_cases"`
	Domains        []string `json:"domains" yaml:"domains"`

	BiometricIdentification bool `json:"biometric_identification" yaml:"biometric_identification"`
	EmotionInference        bool `json:"emotion_inference" yaml:"emotion_inference"`
	HumanOversight          bool `json:"human_oversight" yaml:"human_oversight"`
	TransparencyProvided    bool `json:"transparency_provided" yaml:"transparency_provided"`
}

// Result is the output of classifying a System.
type Result struct {
	Category          Category   `json:"category"`
	Confidence        Confidence `json:"confidence"`
	Reasoning         []string   `json:"reasoning"`
	Actions           []string   `json:"actions"`
	CompletenessScore float64    `json:"completeness_score"`
	MissingFields     []string   `json:"missing_fields"`
}

// CompletenessPercent returns the completeness score as a whole percentage.
// It is for display only; comparisons use CompletenessScore.
func (r Result) CompletenessPercent() int {
	return int(math.Round(r.CompletenessScore * 100))
}

// CompletenessBadgeClass returns the style tag for a completeness score.
func CompletenessBadgeClass(score float64) string {
	switch {
	case score >= 0.8:
		return "badge-green"
	case score >= 0.5:
		return "badge-yellow"
	default:
		return "badge-red"
	}
}
