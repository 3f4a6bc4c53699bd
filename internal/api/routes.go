package api

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/aicomply/pkg/openapi"
	"github.com/JaimeStill/aicomply/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) error {
	groups := []routes.Group{
		domain.Systems.Handler(runtime.MaxBodySize).Routes(),
		domain.Classifications.Handler(runtime.MaxBodySize).Routes(),
		newRiskHandler(runtime.Classifier, runtime.Logger, runtime.MaxBodySize).routes(),
		newStorageHandler(runtime.Storage, runtime.Logger, runtime.MaxListSize).routes(),
	}

	spec, err := json.Marshal(openapi.Build(&runtime.OpenAPI, runtime.Version, runtime.BasePath, groups...))
	if err != nil {
		return err
	}

	routes.Register(mux, groups...)
	mux.HandleFunc("GET /openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(spec)
	})
	return nil
}
