// Package openapi derives an OpenAPI 3.1 description from route groups.
// Only paths, methods, path parameters, and summaries are described;
// request and response schemas are left to the handler documentation.
package openapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/JaimeStill/aicomply/pkg/routes"
)

// Spec is the subset of an OpenAPI document this package emits.
type Spec struct {
	OpenAPI string               `json:"openapi"`
	Info    Info                 `json:"info"`
	Servers []Server             `json:"servers,omitempty"`
	Paths   map[string]*PathItem `json:"paths"`
}

type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

type Server struct {
	URL string `json:"url"`
}

// PathItem groups the operations on one path.
type PathItem struct {
	Get    *Operation `json:"get,omitempty"`
	Post   *Operation `json:"post,omitempty"`
	Put    *Operation `json:"put,omitempty"`
	Delete *Operation `json:"delete,omitempty"`
}

type Operation struct {
	Summary    string               `json:"summary,omitempty"`
	Tags       []string             `json:"tags,omitempty"`
	Parameters []Parameter          `json:"parameters,omitempty"`
	Responses  map[string]*Response `json:"responses"`
}

type Parameter struct {
	Name     string `json:"name"`
	In       string `json:"in"`
	Required bool   `json:"required"`
	Schema   Schema `json:"schema"`
}

type Schema struct {
	Type   string `json:"type"`
	Format string `json:"format,omitempty"`
}

type Response struct {
	Description string `json:"description"`
}

// Build describes every route in groups, mounted under basePath.
func Build(cfg *Config, version, basePath string, groups ...routes.Group) *Spec {
	spec := &Spec{
		OpenAPI: "3.1.0",
		Info: Info{
			Title:       cfg.Title,
			Version:     version,
			Description: cfg.Description,
		},
		Paths: make(map[string]*PathItem),
	}
	if basePath != "" {
		spec.Servers = []Server{{URL: basePath}}
	}

	for _, g := range groups {
		g.Each(func(path string, r routes.Route) {
			path, params := normalize(path)

			item, ok := spec.Paths[path]
			if !ok {
				item = &PathItem{}
				spec.Paths[path] = item
			}

			op := &Operation{
				Summary:    r.Summary,
				Tags:       []string{tag(path)},
				Parameters: params,
				Responses:  map[string]*Response{"default": {Description: "JSON response or error"}},
			}

			switch r.Method {
			case http.MethodGet:
				item.Get = op
			case http.MethodPost:
				item.Post = op
			case http.MethodPut:
				item.Put = op
			case http.MethodDelete:
				item.Delete = op
			}
		})
	}

	return spec
}

// normalize rewrites ServeMux wildcards ({key...}) to OpenAPI templates and
// returns the path parameters in order of appearance.
func normalize(path string) (string, []Parameter) {
	if path == "" {
		path = "/"
	}

	segments := strings.Split(path, "/")
	var params []Parameter
	for i, seg := range segments {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}

		name := strings.TrimSuffix(strings.Trim(seg, "{}"), "...")
		segments[i] = "{" + name + "}"

		schema := Schema{Type: "string"}
		if name == "id" || strings.HasSuffix(name, "Id") {
			schema.Format = "uuid"
		}
		params = append(params, Parameter{Name: name, In: "path", Required: true, Schema: schema})
	}

	return strings.Join(segments, "/"), params
}

func tag(path string) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return seg
}

// PathList returns the documented paths in sorted order.
func (s *Spec) PathList() []string {
	out := make([]string, 0, len(s.Paths))
	for p := range s.Paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
