package server

import (
	"net/http"
)

// RequireSession gates the directory routes on a signed-in operator. There is
// no per-request token check here: the directory client resolves a token per
// call, and an expired upstream session comes back as a session-expired error
// from the API itself.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !s.session.IsAuthenticated() {
				writeJSONError(w, http.StatusUnauthorized, "unauthenticated", "sign in before calling directory operations")
				return
			}
			next(w, r)
		}
	}
}
