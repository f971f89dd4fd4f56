package server

import (
	"net/http"

	"github.com/stafftools/entra-admin/session"
)

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	Account       *session.Account `json:"account,omitempty"`
}

// LoginHandler starts the interactive sign-in flow. The browser popup opens
// on the operator's machine; the request completes when the flow does.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, err := s.session.Login(r.Context())
		if err != nil {
			// A dismissed popup is not retried; the operator decides.
			writeDirectoryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true, Account: &account})
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.session.Logout()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, ok := s.session.Account()
		if !ok {
			writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true, Account: &account})
	}
}
