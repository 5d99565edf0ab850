package httpx

import (
	"errors"
	"net/http"

	"github.com/accessdesk/accessdesk/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807. The
// distinguishing error kind is preserved in the response rather than being
// flattened into a generic failure.
func RespondError(w http.ResponseWriter, err error) {
	var verr *shared.ValidationError
	switch {
	case errors.As(err, &verr):
		Problem(w, http.StatusBadRequest, "Validation Failed", verr.Reason)
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrProtected):
		Problem(w, http.StatusForbidden, "Protected Resource", "default roles cannot be modified or deleted")
	case errors.Is(err, shared.ErrStorage):
		Problem(w, http.StatusBadGateway, "Storage Failure", "persistence layer unavailable")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
