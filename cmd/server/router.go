package main

import (
	"net/http"

	"github.com/JaimeStill/aicomply/internal/infrastructure"
	"github.com/JaimeStill/aicomply/pkg/handlers"
	"github.com/JaimeStill/aicomply/pkg/module"
)

// buildRouter registers the probes. Modules are mounted by the caller.
func buildRouter(infra *infrastructure.Infrastructure, version string) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":   "not ready",
				"database": infra.Database.Ready(),
				"storage":  infra.Storage.Ready(),
			})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	return router
}
