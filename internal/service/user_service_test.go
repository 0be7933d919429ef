package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/roombook/backend/internal/domain"
	"github.com/roombook/backend/internal/security"
	"github.com/roombook/backend/internal/testfixtures"
)

func TestCreateUserDefaultsRole(t *testing.T) {
	users := testfixtures.NewMemoryUserStore()
	svc := NewUserService(users, security.NewHasher(bcrypt.MinCost))

	err := svc.CreateUser(context.Background(), CreateUserInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Password:  "password123",
	})
	require.NoError(t, err)

	stored, err := users.GetUserByEmail(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, stored.Role)
	assert.NotEqual(t, "password123", stored.PasswordHash)
}

func TestCreateUserWithAdminRole(t *testing.T) {
	users := testfixtures.NewMemoryUserStore()
	svc := NewUserService(users, security.NewHasher(bcrypt.MinCost))

	err := svc.CreateUser(context.Background(), CreateUserInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Password:  "password123",
		Role:      domain.RoleAdmin,
	})
	require.NoError(t, err)

	stored, err := users.GetUserByEmail(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, stored.Role)
}
