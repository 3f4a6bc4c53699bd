package classifications

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/aicomply/internal/systems"
	"github.com/JaimeStill/aicomply/pkg/storage"
)

var (
	ErrNotFound        = errors.New("classification not found")
	ErrDuplicate       = errors.New("classification already exists")
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidCategory = errors.New("category must be one of: prohibited, high-risk, limited-risk, minimal-risk")
	ErrValidation      = errors.New("invalid classification request")
)

// MapHTTPStatus maps classification errors, including those surfaced from
// the systems and storage packages, to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, systems.ErrNotFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
