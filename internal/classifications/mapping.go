package classifications

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/aicomply/pkg/query"
	"github.com/JaimeStill/aicomply/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "classifications", "c").
	Project("id", "id").
	Project("system_id", "system_id").
	Project("category", "category").
	Project("confidence", "confidence").
	Project("reasoning", "reasoning").
	Project("actions", "actions").
	Project("completeness_score", "completeness_score").
	Project("missing_fields", "missing_fields").
	Project("snapshot_key", "snapshot_key").
	Project("classified_at", "classified_at").
	Project("override_reason", "override_reason").
	Project("validated_by", "validated_by").
	Project("validated_at", "validated_at")

var defaultSort = query.SortField{
	Field:      "classified_at",
	Descending: true,
}

// Filters contains optional exact-match criteria for classification queries.
type Filters struct {
	Category    *string    `json:"category,omitempty"`
	Confidence  *string    `json:"confidence,omitempty"`
	SystemID    *uuid.UUID `json:"system_id,omitempty"`
	ValidatedBy *string    `json:"validated_by,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("category", f.Category).
		WhereEquals("confidence", f.Confidence).
		WhereEquals("system_id", f.SystemID).
		WhereEquals("validated_by", f.ValidatedBy)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// A malformed system_id is ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}
	if c := values.Get("confidence"); c != "" {
		f.Confidence = &c
	}
	if s := values.Get("system_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.SystemID = &id
		}
	}
	if v := values.Get("validated_by"); v != "" {
		f.ValidatedBy = &v
	}

	return f
}

func scanClassification(s repository.Scanner) (Classification, error) {
	var (
		c                                Classification
		reasoning, actions, missingField []byte
	)

	err := s.Scan(
		&c.ID,
		&c.SystemID,
		&c.Category,
		&c.Confidence,
		&reasoning,
		&actions,
		&c.CompletenessScore,
		&missingField,
		&c.SnapshotKey,
		&c.ClassifiedAt,
		&c.OverrideReason,
		&c.ValidatedBy,
		&c.ValidatedAt,
	)
	if err != nil {
		return c, err
	}

	for name, f := range map[string]struct {
		raw []byte
		dst *[]string
	}{
		"reasoning":      {reasoning, &c.Reasoning},
		"actions":        {actions, &c.Actions},
		"missing_fields": {missingField, &c.MissingFields},
	} {
		if len(f.raw) > 0 {
			if err := json.Unmarshal(f.raw, f.dst); err != nil {
				return c, fmt.Errorf("unmarshal %s: %w", name, err)
			}
		}
		if *f.dst == nil {
			*f.dst = []string{}
		}
	}

	return c, nil
}

func marshalList(v []string) string {
	if v == nil {
		v = []string{}
	}
	data, _ := json.Marshal(v)
	return string(data)
}

// snapshotKey builds classifications/<system-id>/<unix-nanos>.json.
func snapshotKey(systemID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("classifications/%s/%d.json", systemID, at.UnixNano())
}
