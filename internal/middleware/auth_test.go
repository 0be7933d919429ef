package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roombook/backend/internal/domain"
	"github.com/roombook/backend/internal/security"
	"github.com/roombook/backend/internal/testfixtures"
)

func newAuthority() *security.Authority {
	return security.NewAuthority(security.AuthorityConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
}

func newProtectedApp(tokens *security.Authority, users *testfixtures.MemoryUserStore) *fiber.App {
	app := fiber.New()
	app.Get("/protected", RequireAuth(tokens, users), func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "success", "data": AuthUser(c)})
	})
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRequireAuthMissingHeader(t *testing.T) {
	app := newProtectedApp(newAuthority(), testfixtures.NewMemoryUserStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Authorization header must be in format: Bearer <token>", body["message"])
}

func TestRequireAuthNonBearerScheme(t *testing.T) {
	app := newProtectedApp(newAuthority(), testfixtures.NewMemoryUserStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Authorization header must be in format: Bearer <token>", body["message"])
}

func TestRequireAuthEmptyToken(t *testing.T) {
	app := newProtectedApp(newAuthority(), testfixtures.NewMemoryUserStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer ")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Token is missing", body["message"])
}

func TestRequireAuthInvalidToken(t *testing.T) {
	tokens := newAuthority()
	app := newProtectedApp(tokens, testfixtures.NewMemoryUserStore())

	rogue := security.NewAuthority(security.AuthorityConfig{
		AccessSecret:  []byte("some-other-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
	forged, err := rogue.IssueAccess(&domain.User{ID: 1, Email: "x@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid token", body["message"])
}

func TestRequireAuthUnknownUser(t *testing.T) {
	tokens := newAuthority()
	app := newProtectedApp(tokens, testfixtures.NewMemoryUserStore())

	// Well-signed token whose subject no longer exists.
	token, err := tokens.IssueAccess(&domain.User{ID: 999, Email: "ghost@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "user not found", body["message"])
}

func TestRequireAuthStoreFault(t *testing.T) {
	tokens := newAuthority()
	users := testfixtures.NewMemoryUserStore()
	stored, err := users.CreateUser(context.Background(), &domain.User{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: domain.RoleUser,
	})
	require.NoError(t, err)
	token, err := tokens.IssueAccess(stored)
	require.NoError(t, err)

	users.Err = assert.AnError
	app := newProtectedApp(tokens, users)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "something went wrong", body["message"])
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	tokens := newAuthority()
	users := testfixtures.NewMemoryUserStore()
	stored, err := users.CreateUser(context.Background(), &domain.User{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)
	token, err := tokens.IssueAccess(stored)
	require.NoError(t, err)

	app := newProtectedApp(tokens, users)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", data["email"])
	assert.Equal(t, "ADMIN", data["role"])
}
