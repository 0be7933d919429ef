package service

import (
	"context"
	"log/slog"

	"github.com/roombook/backend/internal/domain"
	"github.com/roombook/backend/internal/port"
	"github.com/roombook/backend/internal/security"
)

// UserService handles administrator-driven user management.
type UserService struct {
	users  port.UserStore
	hasher *security.Hasher
}

// NewUserService creates a new user service.
func NewUserService(users port.UserStore, hasher *security.Hasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// CreateUserInput are the fields for an admin-created user. Role defaults
// to USER when empty.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
}

// CreateUser hashes the password and creates a user with the given role.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) error {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return internal("Failed to hash password.", err)
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	_, err = s.users.CreateUser(ctx, &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return internal("Failed to create new user.", err)
	}

	slog.Info("user created", "email", in.Email, "role", role)
	return nil
}
