package systems_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/aicomply/internal/systems"
	"github.com/JaimeStill/aicomply/pkg/query"
)

func TestFiltersApply(t *testing.T) {
	proj := query.NewProjectionMap("public", "ai_systems", "s").
		Project("status", "status").
		Project("risk_category", "risk_category").
		Project("risk_confidence", "risk_confidence").
		Project("deployment_type", "deployment_type").
		Project("vendor", "vendor").
		Project("domains", "domains")

	f := systems.FiltersFromQuery(url.Values{
		"status": {"active"},
		"vendor": {"acme"},
		"domain": {"health"},
	})

	sql, args := f.Apply(query.NewBuilder(proj)).Build()

	for _, want := range []string{
		"s.status = $1",
		"s.vendor ILIKE $2",
		"s.domains @> $3::jsonb",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("sql %q missing %q", sql, want)
		}
	}

	if len(args) != 3 {
		t.Fatalf("args = %v, want 3", args)
	}
	if args[1] != "%acme%" {
		t.Errorf("vendor arg = %v", args[1])
	}
	if args[2] != `["health"]` {
		t.Errorf("domain arg = %v", args[2])
	}
}

func TestFiltersFromQueryEmpty(t *testing.T) {
	f := systems.FiltersFromQuery(url.Values{"status": {""}})
	if f.Status != nil || f.Domain != nil || f.RiskCategory != nil {
		t.Errorf("FiltersFromQuery() = %+v, want all nil", f)
	}
}
