// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/itemsvc/pkg/auth"
	"github.com/ghuser/itemsvc/pkg/httpx"
	"github.com/ghuser/itemsvc/pkg/logger"
	itemdomain "github.com/ghuser/itemsvc/services/item/domain"
)

// Writer turns errors returned by application services into JSON responses.
type Writer struct {
	log          logger.Logger
	isProduction bool
}

// NewWriter returns a Writer. In production, 5xx messages are replaced with
// the status text.
func NewWriter(log logger.Logger, isProduction bool) *Writer {
	return &Writer{log: log, isProduction: isProduction}
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors, which are logged.
func (ew *Writer) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToStatus(err)

	switch {
	case status == http.StatusUnauthorized:
		auth.WriteUnauthorized(w)
		return
	case status >= http.StatusInternalServerError:
		ew.log.ErrorContext(r.Context(), "request failed", "error", err)
	}

	httpx.JSONError(w, status, httpx.SafeError(err, status, ew.isProduction))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized // 401
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, itemdomain.ErrItemAlreadyExists):
		return http.StatusConflict // 409
	case errors.Is(err, itemdomain.ErrInvalidItemName),
		errors.Is(err, itemdomain.ErrInvalidPrice),
		errors.Is(err, itemdomain.ErrInvalidListQuery):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
