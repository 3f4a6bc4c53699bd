package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/aicomply/internal/api"
	"github.com/JaimeStill/aicomply/internal/config"
	"github.com/JaimeStill/aicomply/internal/infrastructure"
	"github.com/JaimeStill/aicomply/internal/risk"
	"github.com/JaimeStill/aicomply/pkg/database"
	"github.com/JaimeStill/aicomply/pkg/pagination"
	"github.com/JaimeStill/aicomply/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func validConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "aicomply",
			User:            "aicomply",
			Password:        "aicomply",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "snapshots",
			ConnectionString: azuriteConnString,
			MaxListSize:      50,
		},
		API: config.APIConfig{
			Pagination: pagination.Config{
				DefaultPageSize: 20,
				MaxPageSize:     100,
			},
		},
		Risk: config.RiskConfig{
			DowngradeThreshold:    0.5,
			ReclassifyConcurrency: 4,
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}

	if err := cfg.API.Finalize(); err != nil {
		t.Fatalf("API.Finalize() error = %v", err)
	}
	return cfg
}

func setupInfra(t *testing.T, cfg *config.Config) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.NewWithWriter(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	return infra
}

func TestNewModule(t *testing.T) {
	cfg := validConfig(t)

	m, err := api.NewModule(cfg, setupInfra(t, cfg))
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig(t)
	runtime := api.NewRuntime(cfg, setupInfra(t, cfg))

	if runtime.Pagination.DefaultPageSize != 20 {
		t.Errorf("pagination default page size: got %d, want 20", runtime.Pagination.DefaultPageSize)
	}
	if runtime.MaxBodySize != 1<<20 {
		t.Errorf("max body size: got %d, want %d", runtime.MaxBodySize, 1<<20)
	}
	if runtime.MaxListSize != 50 {
		t.Errorf("max list size: got %d, want 50", runtime.MaxListSize)
	}
	if runtime.ReclassifyConcurrency != 4 {
		t.Errorf("reclassify concurrency: got %d, want 4", runtime.ReclassifyConcurrency)
	}
	if runtime.Classifier == nil {
		t.Fatal("runtime classifier is nil")
	}
	if runtime.Classifier.Threshold() != 0.5 {
		t.Errorf("threshold: got %v, want 0.5", runtime.Classifier.Threshold())
	}
	if runtime.Logger == nil || runtime.Database == nil || runtime.Storage == nil || runtime.Lifecycle == nil {
		t.Error("runtime left an infrastructure system nil")
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig(t)
	domain := api.NewDomain(api.NewRuntime(cfg, setupInfra(t, cfg)))

	if domain.Systems == nil {
		t.Error("systems is nil")
	}
	if domain.Classifications == nil {
		t.Error("classifications is nil")
	}
}

func serve(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	cfg := validConfig(t)

	m, err := api.NewModule(cfg, setupInfra(t, cfg))
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	m.Serve(rec, req)
	return rec
}

func TestRiskRules(t *testing.T) {
	rec := serve(t, http.MethodGet, "/api/risk/rules", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var got struct {
		DowngradeThreshold float64 `json:"downgrade_threshold"`
		Rules              []struct {
			ID       string        `json:"id"`
			Category risk.Category `json:"category"`
			Weight   int           `json:"weight"`
		} `json:"rules"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.DowngradeThreshold != 0.5 {
		t.Errorf("threshold: got %v, want 0.5", got.DowngradeThreshold)
	}
	if len(got.Rules) != len(risk.DefaultRules()) {
		t.Fatalf("rules: got %d, want %d", len(got.Rules), len(risk.DefaultRules()))
	}
	if got.Rules[0].ID != risk.DefaultRules()[0].ID {
		t.Errorf("first rule: got %s, want %s", got.Rules[0].ID, risk.DefaultRules()[0].ID)
	}
}

func TestRiskAssess(t *testing.T) {
	body := `{
		"name": "Resume Screener",
		"description": "Ranks job applicants",
		"owner": "HR",
		"department": "People",
		"vendor": "Acme",
		"data_categories": ["personal"],
		"affected_users": ["employees"],
		"use_cases": ["decision-support"],
		"domains": ["employment"],
		"human_oversight": true
	}`

	rec := serve(t, http.MethodPost, "/api/risk/assess", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var got risk.Result
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := risk.Classify(risk.System{
		Name:           "Resume Screener",
		Description:    "Ranks job applicants",
		Owner:          "HR",
		Department:     "People",
		Vendor:         "Acme",
		DataCategories: []string{"personal"},
		AffectedUsers:  []string{"employees"},
		UseCases:       []string{"decision-support"},
		Domains:        []string{"employment"},
		HumanOversight: true,
	})
	if got.Category != want.Category {
		t.Errorf("category: got %s, want %s", got.Category, want.Category)
	}
	if got.Confidence != want.Confidence {
		t.Errorf("confidence: got %s, want %s", got.Confidence, want.Confidence)
	}
}

func TestRiskAssessInvalidBody(t *testing.T) {
	rec := serve(t, http.MethodPost, "/api/risk/assess", "{not json")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRiskAssessRejectsUnknownTags(t *testing.T) {
	rec := serve(t, http.MethodPost, "/api/risk/assess", `{"name": "x", "affected_users": ["applicants"]}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Affected users must be one of") {
		t.Errorf("body: got %s", rec.Body.String())
	}
}

func TestRiskAssessUsesSnakeCase(t *testing.T) {
	rec := serve(t, http.MethodPost, "/api/risk/assess",
		`{"name": "x", "biometric_identification": true, "emotion_inference": true}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var got map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["category"] != string(risk.CategoryProhibited) {
		t.Errorf("category: got %v, want prohibited", got["category"])
	}
	if _, ok := got["missing_fields"]; !ok {
		t.Errorf("response missing missing_fields: %v", got)
	}
}

func TestStorageListInvalidMaxResults(t *testing.T) {
	rec := serve(t, http.MethodGet, "/api/storage?max_results=abc", "")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestOpenAPIDocument(t *testing.T) {
	rec := serve(t, http.MethodGet, "/api/openapi.json", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var doc struct {
		Info struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if doc.Info.Version != "0.1.0" {
		t.Errorf("version: got %q, want 0.1.0", doc.Info.Version)
	}
	for _, p := range []string{"/systems", "/systems/{id}", "/classifications/{systemId}", "/risk/assess", "/storage/download/{key}"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("missing path %s", p)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := serve(t, http.MethodGet, "/api/nothing-here", "")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
