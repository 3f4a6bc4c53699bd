package systems

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/JaimeStill/aicomply/pkg/query"
	"github.com/JaimeStill/aicomply/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "ai_systems", "s").
	Project("id", "id").
	Project("name", "name").
	Project("description", "description").
	Project("owner", "owner").
	Project("department", "department").
	Project("vendor", "vendor").
	Project("model", "model").
	Project("provider", "provider").
	Project("deployment_type", "deployment_type").
	Project("data_categories", "data_categories").
	Project("affected_users", "affected_users").
	Project("use_cases", "use_cases").
	Project("domains", "domains").
	Project("human_oversight", "human_oversight").
	Project("human_oversight_description", "human_oversight_description").
	Project("transparency_provided", "transparency_provided").
	Project("biometric_identification", "biometric_identification").
	Project("emotion_inference", "emotion_inference").
	Project("risk_category", "risk_category").
	Project("risk_confidence", "risk_confidence").
	Project("risk_reasoning", "risk_reasoning").
	Project("risk_actions", "risk_actions").
	Project("status", "status").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "name"}

// Filters narrows system listings. Nil fields are ignored. Vendor matches
// case-insensitively by substring; Domain matches systems tagged with it.
type Filters struct {
	Status         *string `json:"status,omitempty"`
	RiskCategory   *string `json:"risk_category,omitempty"`
	RiskConfidence *string `json:"risk_confidence,omitempty"`
	DeploymentType *string `json:"deployment_type,omitempty"`
	Vendor         *string `json:"vendor,omitempty"`
	Domain         *string `json:"domain,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	var domain []byte
	if f.Domain != nil && *f.Domain != "" {
		domain, _ = json.Marshal([]string{*f.Domain})
	}

	return b.
		WhereEquals("status", f.Status).
		WhereEquals("risk_category", f.RiskCategory).
		WhereEquals("risk_confidence", f.RiskConfidence).
		WhereEquals("deployment_type", f.DeploymentType).
		WhereContains("vendor", f.Vendor).
		WhereJSONContains("domains", domain)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	get := func(key string) *string {
		if v := values.Get(key); v != "" {
			return &v
		}
		return nil
	}

	return Filters{
		Status:         get("status"),
		RiskCategory:   get("risk_category"),
		RiskConfidence: get("risk_confidence"),
		DeploymentType: get("deployment_type"),
		Vendor:         get("vendor"),
		Domain:         get("domain"),
	}
}

func scanSystem(s repository.Scanner) (AISystem, error) {
	var (
		sys                                   AISystem
		dataCategories, affectedUsers         []byte
		useCases, domains, reasoning, actions []byte
	)

	err := s.Scan(
		&sys.ID,
		&sys.Name,
		&sys.Description,
		&sys.Owner,
		&sys.Department,
		&sys.Vendor,
		&sys.Model,
		&sys.Provider,
		&sys.DeploymentType,
		&dataCategories,
		&affectedUsers,
		&useCases,
		&domains,
		&sys.HumanOversight,
		&sys.HumanOversightDescription,
		&sys.TransparencyProvided,
		&sys.BiometricIdentification,
		&sys.EmotionInference,
		&sys.RiskCategory,
		&sys.RiskConfidence,
		&reasoning,
		&actions,
		&sys.Status,
		&sys.CreatedAt,
		&sys.UpdatedAt,
	)
	if err != nil {
		return sys, err
	}

	fields := []struct {
		raw []byte
		dst *[]string
	}{
		{dataCategories, &sys.DataCategories},
		{affectedUsers, &sys.AffectedUsers},
		{useCases, &sys.UseCases},
		{domains, &sys.Domains},
		{reasoning, &sys.RiskReasoning},
		{actions, &sys.RiskActions},
	}
	for _, f := range fields {
		if err := unmarshalTags(f.raw, f.dst); err != nil {
			return sys, err
		}
	}
	return sys, nil
}

func unmarshalTags(raw []byte, dst *[]string) error {
	*dst = []string{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal tags: %w", err)
	}
	if *dst == nil {
		*dst = []string{}
	}
	return nil
}

func marshalTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	return string(data)
}
