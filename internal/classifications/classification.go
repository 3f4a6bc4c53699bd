// Package classifications stores the risk classification of each registered
// AI system. Classifying a system runs the rule engine, archives a JSON
// snapshot of the input and result in blob storage, and writes the outcome
// back onto the system record. Reviewers can validate or override a result.
package classifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/aicomply/internal/risk"
)

// Classification is the current classification of one system.
type Classification struct {
	ID                uuid.UUID       `json:"id"`
	SystemID          uuid.UUID       `json:"system_id"`
	Category          risk.Category   `json:"category"`
	Confidence        risk.Confidence `json:"confidence"`
	Reasoning         []string        `json:"reasoning"`
	Actions           []string        `json:"actions"`
	CompletenessScore float64         `json:"completeness_score"`
	MissingFields     []string        `json:"missing_fields"`
	SnapshotKey       string          `json:"snapshot_key"`
	ClassifiedAt      time.Time       `json:"classified_at"`
	OverrideReason    *string         `json:"override_reason"`
	ValidatedBy       *string         `json:"validated_by"`
	ValidatedAt       *time.Time      `json:"validated_at"`
}

// Snapshot is the archived record of a single classification run.
type Snapshot struct {
	SystemID     uuid.UUID   `json:"system_id"`
	Input        risk.System `json:"input"`
	Result       risk.Result `json:"result"`
	ClassifiedAt time.Time   `json:"classified_at"`
}

// Summary counts systems per risk category. Every category is present.
type Summary struct {
	Counts map[risk.Category]int `json:"counts"`
	Total  int                   `json:"total"`
}

// ValidateCommand records a reviewer's sign-off on a classification.
type ValidateCommand struct {
	ValidatedBy string `json:"validated_by"`
}

// UpdateCommand overrides the engine's category and confidence.
// UpdatedBy is stored as the validator.
type UpdateCommand struct {
	Category   string `json:"category"`
	Confidence string `json:"confidence"`
	Reason     string `json:"reason"`
	UpdatedBy  string `json:"updated_by"`
}

// ReclassifyResult reports how many systems a bulk run classified.
type ReclassifyResult struct {
	Reclassified int `json:"reclassified"`
}
