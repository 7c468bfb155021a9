package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthloaf/hearthloaf/internal/config"
	"github.com/hearthloaf/hearthloaf/internal/database"
	"github.com/hearthloaf/hearthloaf/internal/models"
	"github.com/hearthloaf/hearthloaf/internal/services"
	"github.com/hearthloaf/hearthloaf/internal/testutil"
)

func testServerConfig() *config.Config {
	return &config.Config{
		Environment: "production",
		Server:      config.ServerConfig{Port: 0},
		Auth:        config.AuthConfig{JWTSecret: "test-secret", TokenDuration: 1},
		Suggest: config.SuggestConfig{
			PageSize: 8, PerTypeLimit: 5, SnapshotSize: 250,
			RecentLimit: 5, PopularLimit: 5, PopularWindowDays: 7,
		},
	}
}

// newTestServer wires a server over an in-memory database. Redis-backed and
// provider-backed routes are not exercised here.
func newTestServer(t *testing.T) (*HTTPServer, *services.Container) {
	t.Helper()

	db := &database.DB{DB: testutil.SetupInMemoryDB(t)}
	container := services.NewContainer(db, nil, testServerConfig())
	t.Cleanup(container.Stop)

	return NewHTTPServer(testServerConfig(), container), container
}

func seedUser(t *testing.T, container *services.Container, username, password string, isAdmin bool) *models.User {
	t.Helper()

	hash, err := container.GetPasswordHasher().HashPassword(password)
	require.NoError(t, err)

	user := &models.User{Username: username, PasswordHash: hash, IsActive: true, IsAdmin: isAdmin}
	require.NoError(t, container.GetUserRepository().Create(context.Background(), user))
	return user
}

func doJSON(s *HTTPServer, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, s *HTTPServer, username, password string) string {
	t.Helper()

	w := doJSON(s, "POST", "/api/v1/auth/login", "", models.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestLoginAndMe(t *testing.T) {
	s, container := newTestServer(t)
	seedUser(t, container, "baker", "Crusty-L0af!", false)

	token := login(t, s, "baker", "Crusty-L0af!")

	w := doJSON(s, "GET", "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"baker"`)
}

func TestLogin_WrongPassword(t *testing.T) {
	s, container := newTestServer(t)
	seedUser(t, container, "baker", "Crusty-L0af!", false)

	w := doJSON(s, "POST", "/api/v1/auth/login", "", models.LoginRequest{Username: "baker", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "problems/unauthorized")
}

func TestMe_RequiresToken(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(s, "GET", "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminCreateUser(t *testing.T) {
	s, container := newTestServer(t)
	seedUser(t, container, "admin", "Crusty-L0af!", true)
	token := login(t, s, "admin", "Crusty-L0af!")

	w := doJSON(s, "POST", "/api/v1/admin/users", token, models.UserCreateRequest{
		Username: "apprentice",
		Password: "Fresh-D0ugh!",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"apprentice"`)

	// The new account can log in
	login(t, s, "apprentice", "Fresh-D0ugh!")

	// A duplicate username conflicts
	w = doJSON(s, "POST", "/api/v1/admin/users", token, models.UserCreateRequest{
		Username: "apprentice",
		Password: "Fresh-D0ugh!",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "problems/conflict")
}

func TestAdminCreateUser_WeakPasswordRejected(t *testing.T) {
	s, container := newTestServer(t)
	seedUser(t, container, "admin", "Crusty-L0af!", true)
	token := login(t, s, "admin", "Crusty-L0af!")

	w := doJSON(s, "POST", "/api/v1/admin/users", token, models.UserCreateRequest{
		Username: "apprentice",
		Password: "alllowercase",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "weak_password")
}

func TestAdminCreateUser_ForbiddenForNonAdmins(t *testing.T) {
	s, container := newTestServer(t)
	seedUser(t, container, "baker", "Crusty-L0af!", false)
	token := login(t, s, "baker", "Crusty-L0af!")

	w := doJSON(s, "POST", "/api/v1/admin/users", token, models.UserCreateRequest{
		Username: "apprentice",
		Password: "Fresh-D0ugh!",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(s, "POST", "/api/v1/admin/users", "", models.UserCreateRequest{
		Username: "apprentice",
		Password: "Fresh-D0ugh!",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
