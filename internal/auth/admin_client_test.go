package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdminAPI serves the subset of the Supabase admin endpoints the
// client uses.
type fakeAdminAPI struct {
	mu      sync.Mutex
	users   []AdminUser
	created []CreateUserRequest
	deleted []string
}

func (f *fakeAdminAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("apikey") != "service-key" || r.Header.Get("Authorization") != "Bearer service-key" {
		http.Error(w, `{"msg":"invalid key"}`, http.StatusUnauthorized)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/auth/v1/admin/users":
		_ = json.NewEncoder(w).Encode(listUsersResponse{Users: f.users})
	case r.Method == http.MethodPost && r.URL.Path == "/auth/v1/admin/users":
		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.created = append(f.created, req)
		user := AdminUser{ID: "new-user", Email: req.Email}
		f.users = append(f.users, user)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(user)
	case r.Method == http.MethodDelete:
		id := r.URL.Path[len("/auth/v1/admin/users/"):]
		if id == "missing" {
			http.Error(w, `{"msg":"not found"}`, http.StatusNotFound)
			return
		}
		f.deleted = append(f.deleted, id)
		w.WriteHeader(http.StatusOK)
	default:
		http.NotFound(w, r)
	}
}

func newTestAdminClient(t *testing.T, api *fakeAdminAPI, key string) *AdminClient {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return NewAdminClient(srv.URL+"/", key)
}

func TestEnsureUserReturnsExisting(t *testing.T) {
	api := &fakeAdminAPI{users: []AdminUser{{ID: "u-1", Email: "dm@barovia.test"}}}
	c := newTestAdminClient(t, api, "service-key")

	id, created, err := c.EnsureUser(t.Context(), "DM@barovia.test", "secret", "Dungeon Master")
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)
	assert.False(t, created)
	assert.Empty(t, api.created)
}

func TestEnsureUserCreatesConfirmedAccount(t *testing.T) {
	api := &fakeAdminAPI{}
	c := newTestAdminClient(t, api, "service-key")

	id, created, err := c.EnsureUser(t.Context(), "dm@barovia.test", "secret", "Dungeon Master")
	require.NoError(t, err)
	assert.Equal(t, "new-user", id)
	assert.True(t, created)

	require.Len(t, api.created, 1)
	assert.True(t, api.created[0].EmailConfirm)
	assert.Equal(t, "Dungeon Master", api.created[0].UserMetadata["full_name"])
}

func TestEnsureUserSurfacesAPIErrors(t *testing.T) {
	c := newTestAdminClient(t, &fakeAdminAPI{}, "wrong-key")

	_, _, err := c.EnsureUser(t.Context(), "dm@barovia.test", "secret", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestFindUserIDByEmailNotFound(t *testing.T) {
	c := newTestAdminClient(t, &fakeAdminAPI{}, "service-key")

	_, err := c.FindUserIDByEmail(t.Context(), "nobody@barovia.test")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserIsIdempotent(t *testing.T) {
	api := &fakeAdminAPI{}
	c := newTestAdminClient(t, api, "service-key")

	require.NoError(t, c.DeleteUser(t.Context(), "u-1"))
	require.NoError(t, c.DeleteUser(t.Context(), "missing"))
	assert.Equal(t, []string{"u-1"}, api.deleted)
}
