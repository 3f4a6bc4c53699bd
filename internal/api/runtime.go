package api

import (
	"github.com/JaimeStill/aicomply/internal/config"
	"github.com/JaimeStill/aicomply/internal/infrastructure"
	"github.com/JaimeStill/aicomply/internal/risk"
	"github.com/JaimeStill/aicomply/pkg/openapi"
	"github.com/JaimeStill/aicomply/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination            pagination.Config
	Classifier            *risk.Classifier
	ReclassifyConcurrency int
	MaxBodySize           int64
	MaxListSize           int32
	BasePath              string
	Version               string
	OpenAPI               openapi.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination:            cfg.API.Pagination,
		Classifier:            cfg.Risk.Classifier(),
		ReclassifyConcurrency: cfg.Risk.ReclassifyConcurrency,
		MaxBodySize:           cfg.API.MaxBodyBytes(),
		MaxListSize:           cfg.Storage.MaxListSize,
		BasePath:              cfg.API.BasePath,
		Version:               cfg.Version,
		OpenAPI:               cfg.API.OpenAPI,
	}
}
