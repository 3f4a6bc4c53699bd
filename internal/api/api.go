// Package api assembles the HTTP API module from the domain systems.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/aicomply/internal/config"
	"github.com/JaimeStill/aicomply/internal/infrastructure"
	"github.com/JaimeStill/aicomply/pkg/middleware"
	"github.com/JaimeStill/aicomply/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, runtime); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))

	return m, nil
}
