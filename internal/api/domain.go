package api

import (
	"github.com/JaimeStill/aicomply/internal/classifications"
	"github.com/JaimeStill/aicomply/internal/systems"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Systems         systems.System
	Classifications classifications.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	systemsSystem := systems.New(
		runtime.Database.Connection(),
		runtime.Classifier,
		runtime.Logger,
		runtime.Pagination,
	)

	classificationsSystem := classifications.New(
		runtime.Database.Connection(),
		runtime.Storage,
		systemsSystem,
		runtime.Classifier,
		runtime.ReclassifyConcurrency,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Systems:         systemsSystem,
		Classifications: classificationsSystem,
	}
}
