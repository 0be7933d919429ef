package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roombook/backend/internal/domain"
)

func testAuthority(now func() time.Time) *Authority {
	return NewAuthority(AuthorityConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Now:           now,
	})
}

func testUser() *domain.User {
	return &domain.User{
		ID:        42,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Role:      domain.RoleUser,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	a := testAuthority(nil)

	token, err := a.IssueAccess(testUser())
	require.NoError(t, err)

	claims, err := a.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "Ada", claims.FirstName)
	assert.Equal(t, "Lovelace", claims.LastName)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	a := testAuthority(nil)

	token, err := a.IssueRefresh(42)
	require.NoError(t, err)

	claims, err := a.ParseRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	a := testAuthority(nil)
	other := NewAuthority(AuthorityConfig{
		AccessSecret:  []byte("different-access"),
		RefreshSecret: []byte("different-refresh"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})

	token, err := a.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = other.ParseAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenClassesAreNotInterchangeable(t *testing.T) {
	a := testAuthority(nil)

	refresh, err := a.IssueRefresh(42)
	require.NoError(t, err)
	_, err = a.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken, "refresh token accepted as access token")

	access, err := a.IssueAccess(testUser())
	require.NoError(t, err)
	_, err = a.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken, "access token accepted as refresh token")
}

func TestParseRejectsGarbage(t *testing.T) {
	a := testAuthority(nil)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := a.ParseAccess(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestAccessTokenExpiry(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	a := testAuthority(func() time.Time { return now })

	token, err := a.IssueAccess(testUser())
	require.NoError(t, err)

	now = issued.Add(14 * time.Minute)
	_, err = a.ParseAccess(token)
	assert.NoError(t, err, "token rejected inside its lifetime")

	now = issued.Add(16 * time.Minute)
	_, err = a.ParseAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "token accepted after expiry")
}

func TestRefreshTokenExpiry(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	a := testAuthority(func() time.Time { return now })

	token, err := a.IssueRefresh(42)
	require.NoError(t, err)

	now = issued.Add(6 * 24 * time.Hour)
	_, err = a.ParseRefresh(token)
	assert.NoError(t, err, "token rejected inside its lifetime")

	now = issued.Add(8 * 24 * time.Hour)
	_, err = a.ParseRefresh(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "token accepted after expiry")
}
