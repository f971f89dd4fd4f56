package directory_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stafftools/entra-admin/directory"
	"github.com/stafftools/entra-admin/internal/apierror"
)

const graphPrincipalBody = `{"value":[{
	"id":"graph-sp-1",
	"appId":"00000003-0000-0000-c000-000000000000",
	"displayName":"Microsoft Graph",
	"appRoles":[
		{"id":"role-dir-read","value":"Directory.Read.All","displayName":"Read directory data","description":"Allows the app to read directory data."},
		{"id":"role-user-read","value":"User.Read.All","displayName":"Read all users' full profiles","description":"Allows the app to read user profiles."}
	]
}]}`

func grantStub(t *testing.T, assignmentStatus int, assignmentBody string) (http.Handler, *map[string]any) {
	var posted map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("GET /servicePrincipals", func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Query().Get("$filter"), directory.GraphAppID)
		writeJSON(t, w, http.StatusOK, graphPrincipalBody)
	})
	mux.HandleFunc("POST /servicePrincipals/{id}/appRoleAssignments", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		writeJSON(t, w, assignmentStatus, assignmentBody)
	})
	return mux, &posted
}

func TestGrantAppRoleCreatesAssignment(t *testing.T) {
	handler, posted := grantStub(t, http.StatusCreated, `{
		"id":"assignment-1",
		"appRoleId":"role-dir-read",
		"principalId":"worker-sp",
		"resourceId":"graph-sp-1"
	}`)
	client := newTestClient(t, handler)

	assignment, err := client.GrantAppRole(context.Background(), "worker-sp", "Directory.Read.All")
	require.NoError(t, err)
	require.Equal(t, "assignment-1", assignment.ID)

	require.Equal(t, "worker-sp", (*posted)["principalId"])
	require.Equal(t, "graph-sp-1", (*posted)["resourceId"])
	require.Equal(t, "role-dir-read", (*posted)["appRoleId"])
}

func TestGrantAppRoleUnknownRole(t *testing.T) {
	handler, _ := grantStub(t, http.StatusCreated, `{}`)
	client := newTestClient(t, handler)

	_, err := client.GrantAppRole(context.Background(), "worker-sp", "No.Such.Role")

	var notFound *apierror.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGrantAppRoleAlreadyExists(t *testing.T) {
	handler, _ := grantStub(t, http.StatusBadRequest,
		odataErrorBody("Request_BadRequest", "Permission being assigned already exists on the object"))
	client := newTestClient(t, handler)

	_, err := client.GrantAppRole(context.Background(), "worker-sp", "Directory.Read.All")

	var already *apierror.AlreadyGrantedError
	require.ErrorAs(t, err, &already)
	require.Equal(t, "worker-sp", already.PrincipalID)
	require.Equal(t, "Directory.Read.All", already.RoleName)

	var wrapped *apierror.WrappedError
	require.False(t, errors.As(err, &wrapped), "already-granted must not degrade to the catch-all")
}

func TestGrantAppRoleGenericBadRequest(t *testing.T) {
	handler, _ := grantStub(t, http.StatusBadRequest,
		odataErrorBody("Request_BadRequest", "Invalid object identifier"))
	client := newTestClient(t, handler)

	_, err := client.GrantAppRole(context.Background(), "worker-sp", "Directory.Read.All")

	var already *apierror.AlreadyGrantedError
	require.False(t, errors.As(err, &already))
	var wrapped *apierror.WrappedError
	require.ErrorAs(t, err, &wrapped)
	require.Equal(t, http.StatusBadRequest, wrapped.StatusCode)
}

func TestGrantAppRolePermissionDeniedNamesBothGrants(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /servicePrincipals", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, odataErrorBody("Authorization_RequestDenied", "Insufficient privileges"))
	})
	client := newTestClient(t, mux)

	_, err := client.GrantAppRole(context.Background(), "worker-sp", "Directory.Read.All")

	var denied *apierror.PermissionDeniedError
	require.ErrorAs(t, err, &denied)
	require.Contains(t, denied.MissingGrants, "AppRoleAssignment.ReadWrite.All")
	require.Contains(t, denied.MissingGrants, "Application.Read.All")
}

func TestServicePrincipalNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /servicePrincipals/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, odataErrorBody("Request_ResourceNotFound", "does not exist"))
	})
	client := newTestClient(t, mux)

	_, err := client.ServicePrincipal(context.Background(), "missing-sp")

	var notFound *apierror.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Contains(t, notFound.Error(), "missing-sp")
}

func TestAppRoleAssignmentsEnrichment(t *testing.T) {
	assignments := `{"value":[
		{"id":"a1","appRoleId":"role-1","principalId":"p","resourceId":"res-1"},
		{"id":"a2","appRoleId":"role-2","principalId":"p","resourceId":"res-2"},
		{"id":"a3","appRoleId":"role-3","principalId":"p","resourceId":"res-3"}
	]}`

	mux := http.NewServeMux()
	mux.HandleFunc("GET /servicePrincipals/{id}/appRoleAssignments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, assignments)
	})
	mux.HandleFunc("GET /servicePrincipals/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "res-2" {
			// The second assignment's enrichment lookup fails.
			writeJSON(t, w, http.StatusInternalServerError, odataErrorBody("ServiceUnavailable", "try again"))
			return
		}
		n := strings.TrimPrefix(id, "res-")
		writeJSON(t, w, http.StatusOK, fmt.Sprintf(`{
			"id":%q,
			"appId":"app-%s",
			"displayName":"Resource %s",
			"appRoles":[{"id":"role-%s","value":"Scope.%s","displayName":"Role %s","description":"Grants scope %s."}]
		}`, id, n, n, n, n, n, n))
	})
	client := newTestClient(t, mux)

	got, err := client.AppRoleAssignments(context.Background(), "principal-1")
	require.NoError(t, err, "a single enrichment failure must not fail the batch")
	require.Len(t, got, 3)

	byID := make(map[string]directory.AppRoleAssignment)
	for _, a := range got {
		byID[a.ID] = a
	}

	require.Equal(t, "Resource 1", byID["a1"].ResourceDisplayName)
	require.Equal(t, "Scope.1", byID["a1"].RoleValue)
	require.Equal(t, "Role 1", byID["a1"].RoleDisplayName)

	// a2 is degraded to its un-enriched form, nothing more.
	require.Empty(t, byID["a2"].ResourceDisplayName)
	require.Empty(t, byID["a2"].RoleValue)
	require.Equal(t, "res-2", byID["a2"].ResourceID)

	require.Equal(t, "Resource 3", byID["a3"].ResourceDisplayName)
	require.Equal(t, "Scope.3", byID["a3"].RoleValue)
}

func TestAppRoleAssignmentsRequiresID(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	_, err := client.AppRoleAssignments(context.Background(), "")
	require.Error(t, err)
}

func TestListServicePrincipalsPageSize(t *testing.T) {
	var top string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /servicePrincipals", func(w http.ResponseWriter, r *http.Request) {
		top = r.URL.Query().Get("$top")
		writeJSON(t, w, http.StatusOK, `{"value":[]}`)
	})
	client := newTestClient(t, mux)

	_, err := client.ListServicePrincipals(context.Background())
	require.NoError(t, err)
	require.Equal(t, "999", top)
}

func TestListManagedIdentities(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /servicePrincipals", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, `{"value":[
			{"id":"sp1","displayName":"vm-identity","servicePrincipalType":"ManagedIdentity"},
			{"id":"sp2","displayName":"plain-app","servicePrincipalType":"Application"},
			{"id":"sp3","displayName":"func-identity","servicePrincipalType":"ManagedIdentity"},
			{"id":"sp4","displayName":"legacy-app","servicePrincipalType":"Application","tags":["WindowsAzureActiveDirectoryIntegratedApp"]},
			{"id":"sp5","displayName":"gallery-app","servicePrincipalType":"Application","tags":["WindowsAzureActiveDirectoryGalleryApplicationNonPrimaryV1"]}
		]}`)
	})
	client := newTestClient(t, mux)

	identities, err := client.ListManagedIdentities(context.Background())
	require.NoError(t, err)
	require.Len(t, identities, 3)

	ids := make([]string, 0, len(identities))
	for _, sp := range identities {
		ids = append(ids, sp.ID)
	}
	require.ElementsMatch(t, []string{"sp1", "sp3", "sp4"}, ids)
}
