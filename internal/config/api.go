package config

import (
	"fmt"

	"github.com/JaimeStill/aicomply/pkg/envvar"
	"github.com/JaimeStill/aicomply/pkg/formatting"
	"github.com/JaimeStill/aicomply/pkg/middleware"
	"github.com/JaimeStill/aicomply/pkg/openapi"
	"github.com/JaimeStill/aicomply/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "AICOMPLY_CORS_ENABLED",
	Origins:          "AICOMPLY_CORS_ORIGINS",
	AllowedMethods:   "AICOMPLY_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "AICOMPLY_CORS_ALLOWED_HEADERS",
	AllowCredentials: "AICOMPLY_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "AICOMPLY_CORS_MAX_AGE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "AICOMPLY_OPENAPI_TITLE",
	Description: "AICOMPLY_OPENAPI_DESCRIPTION",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "AICOMPLY_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "AICOMPLY_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, request limits, CORS, and pagination settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`

	maxBodyBytes int64
}

// MaxBodyBytes returns the parsed request body limit.
func (c *APIConfig) MaxBodyBytes() int64 {
	return c.maxBodyBytes
}

// Finalize applies defaults, environment overrides, and validation for the
// API config and its nested configs.
func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}

	envvar.String(&c.BasePath, "AICOMPLY_API_BASE_PATH")
	envvar.String(&c.MaxBodySize, "AICOMPLY_API_MAX_BODY_SIZE")

	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_body_size must be positive")
	}
	c.maxBodyBytes = size

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}
