package risk

import (
	"cmp"
	"slices"
)

// DefaultDowngradeThreshold is the completeness score below which a
// classification's confidence is forced to low.
const DefaultDowngradeThreshold = 0.5

// Classifier evaluates a rule table against systems.
// A Classifier holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules     []Rule
	threshold float64
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRules replaces the default rule table. Slice order is the tie-break
// order for rules of equal weight.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.rules = slices.Clone(rules)
	}
}

// WithDowngradeThreshold sets the completeness score below which confidence
// is forced to low.
func WithDowngradeThreshold(threshold float64) Option {
	return func(c *Classifier) {
		c.threshold = threshold
	}
}

// New creates a Classifier over the default rule table unless overridden.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		rules:     defaultRules,
		threshold: DefaultDowngradeThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rules returns a copy of the rule table the classifier evaluates.
func (c *Classifier) Rules() []Rule {
	return slices.Clone(c.rules)
}

// Threshold returns the completeness downgrade threshold.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// Classify evaluates every rule against s and assembles the result.
func (c *Classifier) Classify(s System) Result {
	completeness := ComputeCompleteness(s)

	triggered := make([]Rule, 0, len(c.rules))
	for _, r := range c.rules {
		if r.Test != nil && r.Test(&s) {
			triggered = append(triggered, r)
		}
	}

	var result Result
	if len(triggered) == 0 {
		result = Result{
			Category:   CategoryMinimalRisk,
			Confidence: ConfidenceMedium,
			Reasoning:  slices.Clone(minimalReasoning),
			Actions:    slices.Clone(minimalActions),
		}
	} else {
		result = assess(triggered)
	}

	result.CompletenessScore = completeness.Score
	result.MissingFields = completeness.MissingFields

	if completeness.Score < c.threshold {
		result.Confidence = ConfidenceLow
	}

	return result
}

func assess(triggered []Rule) Result {
	slices.SortStableFunc(triggered, func(a, b Rule) int {
		return cmp.Compare(b.Weight, a.Weight)
	})

	category := triggered[0].Category

	density := 0
	reasoning := make([]string, 0, len(triggered))
	actions := make([]string, 0, len(triggered))
	for _, r := range triggered {
		if r.Category == category {
			density++
		}
		reasoning = append(reasoning, r.Reason)
		if !slices.Contains(actions, r.Action) {
			actions = append(actions, r.Action)
		}
	}

	return Result{
		Category:   category,
		Confidence: densityConfidence(density),
		Reasoning:  reasoning,
		Actions:    actions,
	}
}

func densityConfidence(n int) Confidence {
	switch {
	case n >= 3:
		return ConfidenceHigh
	case n >= 2:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

var defaultClassifier = New()

// Classify classifies s with the default rules and downgrade threshold.
func Classify(s System) Result {
	return defaultClassifier.Classify(s)
}
