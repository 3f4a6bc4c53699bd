package risk

import (
	"fmt"
	"strings"
)

// Rule is a single boolean test over a System together with the category,
// weight and explanation it contributes when triggered.
// Higher weights override lower ones when selecting the category.
type Rule struct {
	ID       string
	Category Category
	Weight   int
	Reason   string
	Action   string
	Test     func(s *System) bool
}

// DefaultRules returns a copy of the built-in rule table in evaluation order.
// Table order breaks ties between rules of equal weight.
func DefaultRules() []Rule {
	rules := make([]Rule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}

var defaultRules = []Rule{
	// prohibited
	{
		ID:       "biometric-emotion",
		Category: CategoryProhibited,
		Weight:   100,
		Reason:   "System combines biometric identification with emotion inference — this may fall under prohibited practices (Art. 5 EU AI Act).",
		Action:   "Seek immediate legal counsel. Consider discontinuing this use case until legal clarity is obtained.",
		Test: func(s *System) bool {
			return s.BiometricIdentification && s.EmotionInference
		},
	},
	{
		ID:       "biometric-public",
		Category: CategoryProhibited,
		Weight:   95,
		Reason:   "Real-time biometric identification of members of the public may be prohibited (Art. 5(1)(d)).",
		Action:   "Review whether exemptions apply. Consult legal counsel before proceeding.",
		Test: func(s *System) bool {
			return s.BiometricIdentification && has(s.AffectedUsers, "public")
		},
	},
	{
		ID:       "emotion-workplace-education",
		Category: CategoryProhibited,
		Weight:   90,
		Reason:   "Emotion recognition in workplace or educational settings is prohibited (Art. 5(1)(f)).",
		Action:   "Discontinue emotion inference in this context. Document decision and alternatives.",
		Test: func(s *System) bool {
			return s.EmotionInference && (has(s.Domains, "employment") || has(s.Domains, "education"))
		},
	},

	// high-risk
	{
		ID:       "high-risk-domain",
		Category: CategoryHighRisk,
		Weight:   70,
		Reason: fmt.Sprintf(
			"System operates in a high-risk domain listed in Annex III (domains: %s).",
			strings.Join(HighRiskDomains, ", "),
		),
		Action: "Implement full high-risk compliance: risk management system, data governance, documentation, human oversight, transparency, and accuracy monitoring.",
		Test: func(s *System) bool {
			return hasAny(s.Domains, HighRiskDomains)
		},
	},
	{
		ID:       "children-automated-decisions",
		Category: CategoryHighRisk,
		Weight:   80,
		Reason:   "Automated decision-making affecting children triggers heightened obligations.",
		Action:   "Conduct a fundamental rights impact assessment. Ensure meaningful human oversight is in place for all decisions affecting minors.",
		Test: func(s *System) bool {
			return has(s.AffectedUsers, "children") && has(s.UseCases, "automated-decisions")
		},
	},
	{
		ID:       "biometric-identification",
		Category: CategoryHighRisk,
		Weight:   75,
		Reason:   "Non-real-time biometric identification is classified as high-risk (Annex III, point 1).",
		Action:   "Register in EU database. Implement conformity assessment. Ensure data governance and logging.",
		Test: func(s *System) bool {
			return s.BiometricIdentification && !s.EmotionInference
		},
	},
	{
		ID:       "sensitive-scoring",
		Category: CategoryHighRisk,
		Weight:   65,
		Reason:   "Scoring/profiling using sensitive personal data is likely high-risk.",
		Action:   "Implement transparency measures. Ensure affected persons can request human review.",
		Test: func(s *System) bool {
			return has(s.UseCases, "scoring") && has(s.DataCategories, "sensitive")
		},
	},
	{
		ID:       "automated-personal-data",
		Category: CategoryHighRisk,
		Weight:   60,
		Reason:   "Automated decisions involving personal data may be high-risk, especially under GDPR Art. 22.",
		Action:   "Implement human oversight mechanism. Provide clear opt-out path. Document decision logic.",
		Test: func(s *System) bool {
			return has(s.UseCases, "automated-decisions") && has(s.DataCategories, "personal")
		},
	},

	// limited-risk
	{
		ID:       "content-generation",
		Category: CategoryLimitedRisk,
		Weight:   40,
		Reason:   "Content generation AI must comply with transparency obligations (Art. 50).",
		Action:   "Label AI-generated content clearly. Inform users they are interacting with AI.",
		Test: func(s *System) bool {
			return has(s.UseCases, "content-generation")
		},
	},
	{
		ID:       "emotion-inference",
		Category: CategoryLimitedRisk,
		Weight:   45,
		Reason:   "Emotion recognition outside prohibited contexts triggers transparency requirements.",
		Action:   "Notify affected persons that emotion recognition is being used. Obtain consent where required.",
		Test: func(s *System) bool {
			return s.EmotionInference && !has(s.Domains, "employment") && !has(s.Domains, "education")
		},
	},
	{
		ID:       "missing-transparency",
		Category: CategoryLimitedRisk,
		Weight:   35,
		Reason:   "Customer-facing AI lacking transparency notice requires at minimum limited-risk compliance.",
		Action:   "Add transparency notice informing customers they are interacting with AI.",
		Test: func(s *System) bool {
			return !s.TransparencyProvided && has(s.AffectedUsers, "customers")
		},
	},
	{
		ID:       "public-recommendations",
		Category: CategoryLimitedRisk,
		Weight:   30,
		Reason:   "Public-facing recommendation systems have transparency obligations.",
		Action:   "Disclose that recommendations are AI-generated. Provide information about ranking criteria.",
		Test: func(s *System) bool {
			return has(s.UseCases, "recommendations") && has(s.AffectedUsers, "public")
		},
	},
}

// Minimal-risk outcome used when no rule triggers.
var (
	minimalReasoning = []string{
		"No high-risk, limited-risk, or prohibited indicators were triggered. System appears to be minimal-risk under the EU AI Act.",
	}
	minimalActions = []string{
		"Develop a basic AI usage policy.",
		"Ensure staff are aware they are using AI tools.",
		"Maintain basic records of AI system usage.",
		"Review classification periodically or when system changes.",
	}
)
