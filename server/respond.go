package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/stafftools/entra-admin/internal/apierror"
)

const contentTypeJSON = "application/json; charset=utf-8"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("failed to encode response body")
	}
}

type errorBody struct {
	Error            string   `json:"error"`
	ErrorDescription string   `json:"error_description"`
	MissingGrants    []string `json:"missing_grants,omitempty"`
}

func writeJSONError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, errorBody{Error: code, ErrorDescription: description})
}

// writeDirectoryError maps the apierror set onto HTTP statuses for the front
// end. The mapping is by type, never by message text.
func writeDirectoryError(w http.ResponseWriter, err error) {
	var (
		authErr    *apierror.AuthenticationError
		expiredErr *apierror.SessionExpiredError
		deniedErr  *apierror.PermissionDeniedError
		missingErr *apierror.NotFoundError
		wrappedErr *apierror.WrappedError
	)

	switch {
	case errors.As(err, &authErr):
		writeJSONError(w, http.StatusUnauthorized, "authentication_failed", authErr.Error())
	case errors.As(err, &expiredErr):
		writeJSONError(w, http.StatusUnauthorized, "session_expired", expiredErr.Error())
	case errors.As(err, &deniedErr):
		writeJSON(w, http.StatusForbidden, errorBody{
			Error:            "permission_denied",
			ErrorDescription: deniedErr.Error(),
			MissingGrants:    deniedErr.MissingGrants,
		})
	case errors.As(err, &missingErr):
		writeJSONError(w, http.StatusNotFound, "not_found", missingErr.Error())
	case errors.As(err, &wrappedErr):
		log.Err(err).Msg("directory API error")
		writeJSONError(w, http.StatusBadGateway, "directory_error", wrappedErr.Error())
	default:
		log.Err(err).Msg("unexpected error")
		writeJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
