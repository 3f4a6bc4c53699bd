package main

import (
	"fmt"
	"time"

	"github.com/JaimeStill/aicomply/internal/api"
	"github.com/JaimeStill/aicomply/internal/config"
	"github.com/JaimeStill/aicomply/internal/infrastructure"
)

// Server ties the registry API and the probes to one listener.
type Server struct {
	infra *infrastructure.Infrastructure
	http  *httpServer
}

// NewServer builds every subsystem from cfg. Nothing connects until Start.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, fmt.Errorf("api module: %w", err)
	}

	router := buildRouter(infra, cfg.Version)
	router.Mount(apiModule)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"api", apiModule.Prefix(),
		"version", cfg.Version,
		"downgrade_threshold", cfg.Risk.DowngradeThreshold,
	)

	return &Server{
		infra: infra,
		http:  newHTTPServer(&cfg.Server, cfg.ShutdownTimeoutDuration(), router, infra.Logger),
	}, nil
}

// Start registers startup and shutdown hooks and begins listening without
// blocking. Readiness flips once the database and storage report ready.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("startup complete", "ready", s.infra.Lifecycle.Ready())
	}()

	return nil
}

// Shutdown cancels the lifecycle and waits up to timeout for hooks to drain.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("shutdown requested", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}
