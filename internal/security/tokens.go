package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/roombook/backend/internal/domain"
)

// ErrInvalidToken is returned when a token is malformed, bears a bad
// signature, or has expired.
var ErrInvalidToken = errors.New("invalid token")

// AccessClaims is the rich claim set embedded in access tokens: enough to
// identify and display the user without a lookup.
type AccessClaims struct {
	UserID    int64  `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims is the minimal claim set embedded in refresh tokens: just
// enough to look the user up again.
type RefreshClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// AuthorityConfig configures an Authority. Now is optional and defaults
// to the UTC wall clock; tests inject a fixed clock through it.
type AuthorityConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

// Authority issues and verifies HS256-signed access and refresh tokens.
// The two token classes are signed with independent secrets so that
// leaking one class cannot forge the other.
type Authority struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewAuthority returns an Authority for the given secrets and lifetimes.
func NewAuthority(cfg AuthorityConfig) *Authority {
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Authority{
		accessSecret:  cfg.AccessSecret,
		refreshSecret: cfg.RefreshSecret,
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           cfg.Now,
	}
}

// IssueAccess signs a short-lived access token carrying the user's
// identity claims.
func (a *Authority) IssueAccess(u *domain.User) (string, error) {
	now := a.now()
	claims := AccessClaims{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.accessSecret)
}

// IssueRefresh signs a long-lived refresh token carrying only the user id.
func (a *Authority) IssueRefresh(userID int64) (string, error) {
	now := a.now()
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.refreshSecret)
}

// ParseAccess verifies an access token against the access secret and
// returns its claims, or ErrInvalidToken.
func (a *Authority) ParseAccess(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := a.parse(token, claims, a.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefresh verifies a refresh token against the refresh secret and
// returns its claims, or ErrInvalidToken.
func (a *Authority) ParseRefresh(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := a.parse(token, claims, a.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (a *Authority) parse(token string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}
