package tenancy

import (
	"errors"
	"net/http"

	"github.com/meridian-erp/meridian/internal/platform/httpx"
)

// RespondError maps tenancy errors to HTTP responses, deferring anything
// else to the platform mapping. Binding failures surface as a generic
// internal error; the detail stays in the logs.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, ErrNoTenant):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "")
	case errors.Is(err, ErrUnknownColumn):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "")
	case errors.Is(err, ErrBindFailed):
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	default:
		httpx.RespondError(w, err)
	}
}
