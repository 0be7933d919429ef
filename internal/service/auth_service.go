package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/roombook/backend/internal/domain"
	"github.com/roombook/backend/internal/port"
	"github.com/roombook/backend/internal/security"
)

// AuthService coordinates the credential verifier, token authority, and
// the per-user refresh-token slot into the registration, login, and
// refresh flows.
type AuthService struct {
	users  port.UserStore
	hasher *security.Hasher
	tokens *security.Authority
}

// NewAuthService creates a new authentication service.
func NewAuthService(users port.UserStore, hasher *security.Hasher, tokens *security.Authority) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Register hashes the password and creates a user with the default role.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return internal("Failed to hash password.", err)
	}

	_, err = s.users.CreateUser(ctx, &domain.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return internal("Failed to create new user.", err)
	}

	slog.Info("user registered", "email", email)
	return nil
}

// Login verifies the credentials, issues an access/refresh token pair, and
// records the refresh token as the user's single valid session. A wrong
// email and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, port.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, internal("Failed to query the database", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, internal("Failed to validate password", err)
	}

	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, internal("Internal server error", err)
	}
	refreshToken, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, internal("Internal server error", err)
	}

	// Overwriting the slot revokes any refresh token from a previous login.
	if err := s.users.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, internal("Failed to update user", err)
	}

	slog.Info("user logged in", "user_id", user.ID)
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a valid, non-revoked refresh token for a new access
// token. The refresh token itself is not rotated. Validity requires both a
// good signature within the expiry window and exact equality with the
// token currently stored against the user.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return "", ErrRefreshInvalid
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, port.ErrUserNotFound) {
		return "", ErrRefreshRevoked
	}
	if err != nil {
		return "", internal("Failed to get user", err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return "", ErrRefreshRevoked
	}

	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		return "", internal("Internal server error", err)
	}
	return accessToken, nil
}
