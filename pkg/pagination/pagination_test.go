package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/JaimeStill/aicomply/pkg/pagination"
)

var testConfig = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg pagination.Config
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg != testConfig {
			t.Errorf("got %+v, want %+v", cfg, testConfig)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_PAGE_DEFAULT", "10")
		t.Setenv("TEST_PAGE_MAX", "50")

		var cfg pagination.Config
		err := cfg.Finalize(&pagination.ConfigEnv{
			DefaultPageSize: "TEST_PAGE_DEFAULT",
			MaxPageSize:     "TEST_PAGE_MAX",
		})
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.DefaultPageSize != 10 || cfg.MaxPageSize != 50 {
			t.Errorf("got %+v", cfg)
		}
	})

	t.Run("default exceeds max", func(t *testing.T) {
		cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
		wantOffset   int
	}{
		{"zero values", pagination.PageRequest{}, 1, 20, 0},
		{"negative page", pagination.PageRequest{Page: -3, PageSize: 10}, 1, 10, 0},
		{"oversized page", pagination.PageRequest{Page: 3, PageSize: 500}, 3, 100, 200},
		{"valid", pagination.PageRequest{Page: 2, PageSize: 25}, 2, 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Normalize(testConfig)

			if req.Page != tt.wantPage {
				t.Errorf("page: got %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("page_size: got %d, want %d", req.PageSize, tt.wantPageSize)
			}
			if req.Offset() != tt.wantOffset {
				t.Errorf("offset: got %d, want %d", req.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{
		"page":      {"2"},
		"page_size": {"15"},
		"search":    {"screener"},
		"sort":      {"name,-updated_at"},
	}

	req := pagination.PageRequestFromQuery(values, testConfig)

	if req.Page != 2 || req.PageSize != 15 {
		t.Errorf("page/page_size: got %d/%d", req.Page, req.PageSize)
	}
	if req.Search == nil || *req.Search != "screener" {
		t.Errorf("search: got %v", req.Search)
	}
	if len(req.Sort) != 2 || req.Sort[0].Field != "name" || !req.Sort[1].Descending {
		t.Errorf("sort: got %+v", req.Sort)
	}

	empty := pagination.PageRequestFromQuery(url.Values{}, testConfig)
	if empty.Search != nil {
		t.Error("search should be nil when absent")
	}
	if empty.PageSize != 20 {
		t.Errorf("page_size default: got %d", empty.PageSize)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		wantPages int
	}{
		{"exact", 40, 20, 2},
		{"remainder", 41, 20, 3},
		{"empty", 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := pagination.NewPageResult([]string{"a"}, tt.total, 1, tt.pageSize)
			if r.TotalPages != tt.wantPages {
				t.Errorf("total_pages: got %d, want %d", r.TotalPages, tt.wantPages)
			}
		})
	}

	r := pagination.NewPageResult[string](nil, 0, 1, 20)
	if r.Data == nil {
		t.Error("nil data should become an empty slice")
	}
}

func TestSortFieldsUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"string", `"-risk_category,name"`},
		{"array", `[{"field":"risk_category","descending":true},{"field":"name"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s pagination.SortFields
			if err := json.Unmarshal([]byte(tt.input), &s); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(s) != 2 {
				t.Fatalf("length: got %d, want 2", len(s))
			}
			if s[0].Field != "risk_category" || !s[0].Descending {
				t.Errorf("first: got %+v", s[0])
			}
			if s[1].Field != "name" || s[1].Descending {
				t.Errorf("second: got %+v", s[1])
			}
		})
	}
}
