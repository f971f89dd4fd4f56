package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stafftools/entra-admin/directory"
	"github.com/stafftools/entra-admin/internal/apierror"
)

func (s *Server) PrincipalsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principals, err := s.directory.ListServicePrincipals(r.Context())
		if err != nil {
			writeDirectoryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, principals)
	}
}

func (s *Server) ManagedIdentitiesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identities, err := s.directory.ListManagedIdentities(r.Context())
		if err != nil {
			writeDirectoryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, identities)
	}
}

func (s *Server) PrincipalGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := s.directory.ServicePrincipal(r.Context(), r.PathValue("id"))
		if err != nil {
			writeDirectoryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, principal)
	}
}

func (s *Server) AssignmentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignments, err := s.directory.AppRoleAssignments(r.Context(), r.PathValue("id"))
		if err != nil {
			writeDirectoryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, assignments)
	}
}

type grantRoleRequest struct {
	RoleName string `json:"roleName"`
}

type grantRoleResponse struct {
	AlreadyGranted bool                         `json:"alreadyGranted"`
	Assignment     *directory.AppRoleAssignment `json:"assignment,omitempty"`
}

func (s *Server) GrantRoleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req grantRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoleName == "" {
			writeJSONError(w, http.StatusBadRequest, "invalid_request", "roleName is required")
			return
		}

		assignment, err := s.directory.GrantAppRole(r.Context(), r.PathValue("id"), req.RoleName)
		if err != nil {
			var already *apierror.AlreadyGrantedError
			if errors.As(err, &already) {
				writeJSON(w, http.StatusOK, grantRoleResponse{AlreadyGranted: true})
				return
			}
			writeDirectoryError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, grantRoleResponse{Assignment: assignment})
	}
}
