package server

import (
	"encoding/json"
	"net/http"

	"github.com/stafftools/entra-admin/directory"
)

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := s.directory.CurrentProfile(r.Context())
		if err != nil {
			writeDirectoryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func (s *Server) UserSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("search")
		if term == "" {
			writeJSONError(w, http.StatusBadRequest, "invalid_request", "search query parameter is required")
			return
		}

		users, err := s.directory.SearchUsers(r.Context(), term)
		if err != nil {
			writeDirectoryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func (s *Server) UserGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := s.directory.Profile(r.Context(), r.PathValue("id"))
		if err != nil {
			writeDirectoryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func (s *Server) UserUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update directory.ProfileUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_request", "request body is not a valid profile update")
			return
		}
		if update == (directory.ProfileUpdate{}) {
			writeJSONError(w, http.StatusBadRequest, "invalid_request", "profile update contains no fields")
			return
		}

		if err := s.directory.UpdateProfile(r.Context(), r.PathValue("id"), update); err != nil {
			writeDirectoryError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type createPassRequest struct {
	LifetimeMinutes int  `json:"lifetimeMinutes"`
	Reusable        bool `json:"reusable"`
	// ViaAutomation routes the request through the pre-provisioned webhook
	// instead of the directory API.
	ViaAutomation bool `json:"viaAutomation"`
}

type webhookPassResponse struct {
	TemporaryAccessPass string `json:"temporaryAccessPass"`
}

// CreatePassHandler issues a temporary access pass. The response is the only
// place the secret ever appears; it is not stored and cannot be fetched
// again.
func (s *Server) CreatePassHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPassRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid_request", "request body is not a valid pass request")
				return
			}
		}

		if req.LifetimeMinutes < 0 {
			writeJSONError(w, http.StatusBadRequest, "invalid_request", "lifetimeMinutes must not be negative")
			return
		}

		userID := r.PathValue("id")

		if req.ViaAutomation {
			if s.passWebhook == nil {
				writeJSONError(w, http.StatusBadRequest, "invalid_request", "automation webhook is not configured")
				return
			}
			secret, err := s.passWebhook.IssuePass(r.Context(), userID)
			if err != nil {
				writeDirectoryError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, webhookPassResponse{TemporaryAccessPass: secret})
			return
		}

		pass, err := s.directory.CreateAccessPass(r.Context(), userID, directory.PassOptions{
			LifetimeMinutes: req.LifetimeMinutes,
			Reusable:        req.Reusable,
		})
		if err != nil {
			writeDirectoryError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, pass)
	}
}

func (s *Server) PassMethodsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		methods, err := s.directory.ListAccessPassMethods(r.Context(), r.PathValue("id"))
		if err != nil {
			writeDirectoryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, methods)
	}
}
