// Package systems implements the AI system registry: the inventory of AI
// systems an organization operates, each carrying the attributes the risk
// engine classifies and the most recent classification written back to it.
package systems

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/aicomply/internal/risk"
)

// Deployment types and lifecycle statuses accepted for a system.
var (
	DeploymentTypes = []string{"saas", "in-house", "on-device"}
	Statuses        = []string{"draft", "active", "archived"}
)

// AISystem is a registered AI system.
type AISystem struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Owner          string    `json:"owner"`
	Department     string    `json:"department"`
	Vendor         string    `json:"vendor"`
	Model          string    `json:"model"`
	Provider       string    `json:"provider"`
	DeploymentType string    `json:"deployment_type"`

	DataCategories []string `json:"data_categories"`
	AffectedUsers  []string `json:"affected_users"`
	UseCases       []string `json:"use_cases"`
	Domains        []string `json:"domains"`

	HumanOversight            bool   `json:"human_oversight"`
	HumanOversightDescription string `json:"human_oversight_description"`
	TransparencyProvided      bool   `json:"transparency_provided"`
	BiometricIdentification   bool   `json:"biometric_identification"`
	EmotionInference          bool   `json:"emotion_inference"`

	RiskCategory   risk.Category   `json:"risk_category"`
	RiskConfidence risk.Confidence `json:"risk_confidence,omitempty"`
	RiskReasoning  []string        `json:"risk_reasoning"`
	RiskActions    []string        `json:"risk_actions"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Apply copies a classification outcome onto the stored risk fields.
func (s *AISystem) Apply(result risk.Result) {
	s.RiskCategory = result.Category
	s.RiskConfidence = result.Confidence
	s.RiskReasoning = result.Reasoning
	s.RiskActions = result.Actions
}

// Input projects the fields the risk engine classifies.
func (s *AISystem) Input() risk.System {
	return risk.System{
		Name:                    s.Name,
		Description:             s.Description,
		Owner:                   s.Owner,
		Department:              s.Department,
		Vendor:                  s.Vendor,
		DataCategories:          s.DataCategories,
		AffectedUsers:           s.AffectedUsers,
		UseCases:                s.UseCases,
		Domains:                 s.Domains,
		BiometricIdentification: s.BiometricIdentification,
		EmotionInference:        s.EmotionInference,
		HumanOversight:          s.HumanOversight,
		TransparencyProvided:    s.TransparencyProvided,
	}
}

// Command carries the editable fields of a system for create and full update.
type Command struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Owner          string `json:"owner"`
	Department     string `json:"department"`
	Vendor         string `json:"vendor"`
	Model          string `json:"model"`
	Provider       string `json:"provider"`
	DeploymentType string `json:"deployment_type"`

	DataCategories []string `json:"data_categories"`
	AffectedUsers  []string `json:"affected_users"`
	UseCases       []string `json:"use_cases"`
	Domains        []string `json:"domains"`

	HumanOversight            bool   `json:"human_oversight"`
	HumanOversightDescription string `json:"human_oversight_description"`
	TransparencyProvided      bool   `json:"transparency_provided"`
	BiometricIdentification   bool   `json:"biometric_identification"`
	EmotionInference          bool   `json:"emotion_inference"`

	Status string `json:"status"`
}
