package directory_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stafftools/entra-admin/directory"
	"github.com/stafftools/entra-admin/internal/utils"
)

// userStore is a stub /users backend that applies PATCH merges, so tests can
// verify update/read round trips.
type userStore struct {
	lock  sync.Mutex
	users map[string]*directory.UserProfile
}

func newUserStore(users ...*directory.UserProfile) *userStore {
	s := &userStore{users: make(map[string]*directory.UserProfile)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *userStore) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		defer s.lock.Unlock()
		user, ok := s.users[r.PathValue("id")]
		if !ok {
			writeJSON(t, w, http.StatusNotFound, odataErrorBody("Request_ResourceNotFound", "user does not exist"))
			return
		}
		body, err := json.Marshal(user)
		require.NoError(t, err)
		writeJSON(t, w, http.StatusOK, string(body))
	})
	mux.HandleFunc("PATCH /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		defer s.lock.Unlock()
		user, ok := s.users[r.PathValue("id")]
		if !ok {
			writeJSON(t, w, http.StatusNotFound, odataErrorBody("Request_ResourceNotFound", "user does not exist"))
			return
		}
		var update directory.ProfileUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		if update.DisplayName != nil {
			user.DisplayName = *update.DisplayName
		}
		if update.JobTitle != nil {
			user.JobTitle = *update.JobTitle
		}
		if update.Department != nil {
			user.Department = *update.Department
		}
		if update.MobilePhone != nil {
			user.MobilePhone = *update.MobilePhone
		}
		if update.OfficeLocation != nil {
			user.OfficeLocation = *update.OfficeLocation
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func TestUpdateProfileRoundTrip(t *testing.T) {
	store := newUserStore(&directory.UserProfile{
		ID:                "user-1",
		DisplayName:       "Dana Field",
		Mail:              "dana@contoso.com",
		UserPrincipalName: "dana@contoso.com",
		Department:        "Support",
	})
	client := newTestClient(t, store.handler(t))

	err := client.UpdateProfile(context.Background(), "user-1", directory.ProfileUpdate{
		JobTitle: utils.Ptr("X"),
	})
	require.NoError(t, err)

	profile, err := client.Profile(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "X", profile.JobTitle)
	// Everything else stays as it was.
	require.Equal(t, "Dana Field", profile.DisplayName)
	require.Equal(t, "dana@contoso.com", profile.Mail)
	require.Equal(t, "Support", profile.Department)
}

func TestUpdateProfileRejectsEmptyInputs(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())

	err := client.UpdateProfile(context.Background(), "", directory.ProfileUpdate{JobTitle: utils.Ptr("X")})
	require.Error(t, err)

	err = client.UpdateProfile(context.Background(), "user-1", directory.ProfileUpdate{})
	require.Error(t, err)
}

func TestProfileRequiresID(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	_, err := client.Profile(context.Background(), "")
	require.Error(t, err)
}

func TestSearchUsers(t *testing.T) {
	var gotQuery map[string][]string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		writeJSON(t, w, http.StatusOK, `{"value":[
			{"id":"u1","displayName":"Dan A","userPrincipalName":"dana@contoso.com"},
			{"id":"u2","displayName":"Dan B","userPrincipalName":"danb@contoso.com"}
		]}`)
	})
	client := newTestClient(t, mux)

	users, err := client.SearchUsers(context.Background(), "Dan")
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "u1", users[0].ID)

	require.Equal(t, []string{"10"}, gotQuery["$top"])
	require.Equal(t,
		[]string{"startswith(displayName,'Dan') or startswith(userPrincipalName,'Dan')"},
		gotQuery["$filter"])
}

func TestSearchUsersEscapesQuotes(t *testing.T) {
	var filter string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		filter = r.URL.Query().Get("$filter")
		writeJSON(t, w, http.StatusOK, `{"value":[]}`)
	})
	client := newTestClient(t, mux)

	_, err := client.SearchUsers(context.Background(), "O'Brien")
	require.NoError(t, err)
	require.Contains(t, filter, "startswith(displayName,'O''Brien')")
}

func TestSearchUsersRequiresTerm(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())
	_, err := client.SearchUsers(context.Background(), "  ")
	require.Error(t, err)
}
