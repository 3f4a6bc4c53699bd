package systems

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound   = errors.New("system not found")
	ErrDuplicate  = errors.New("system name already exists")
	ErrValidation = errors.New("invalid system")
	ErrInvalidID  = errors.New("invalid system id")
)

// MapHTTPStatus maps system domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
