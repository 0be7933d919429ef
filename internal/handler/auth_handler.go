package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/roombook/backend/internal/port"
	"github.com/roombook/backend/internal/service"
	"github.com/roombook/backend/internal/validate"
)

// AuthHandler handles registration, login, and token refresh.
type AuthHandler struct {
	auth  *service.AuthService
	users port.UserStore
}

// NewAuthHandler creates a new auth handler. The user store is consulted
// during validation for email uniqueness.
func NewAuthHandler(auth *service.AuthService, users port.UserStore) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// Register sets up the public auth routes.
func (h *AuthHandler) Register(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/register", h.RegisterUser)
	auth.Post("/login", h.Login)
	auth.Post("/refresh", h.Refresh)
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// validateSignupFields checks the fields shared by self-registration and
// admin user creation, including email uniqueness against the store.
func (h *AuthHandler) validateSignupFields(c fiber.Ctx, firstName, lastName, email, password string) (validate.FieldErrors, error) {
	fe := validate.FieldErrors{}

	switch {
	case firstName == "":
		fe.Add("first_name", "First name is required")
	case len(firstName) < 2:
		fe.Add("first_name", "First name must be at least 2 characters long")
	}

	switch {
	case lastName == "":
		fe.Add("last_name", "Last name is required")
	case len(lastName) < 2:
		fe.Add("last_name", "Last name must be at least 2 characters long")
	}

	switch {
	case email == "":
		fe.Add("email", "Email is required")
	case !validate.Email(email):
		fe.Add("email", "Email must be a valid email address")
	default:
		_, err := h.users.GetUserByEmail(c.Context(), email)
		switch {
		case err == nil:
			fe.Add("email", "Email is already registered")
		case !errors.Is(err, port.ErrUserNotFound):
			return nil, err
		}
	}

	switch {
	case password == "":
		fe.Add("password", "Password is required")
	case len(password) < 6:
		fe.Add("password", "Password must be at least 6 characters long")
	}

	return fe, nil
}

// RegisterUser creates a new account with the default USER role.
func (h *AuthHandler) RegisterUser(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return failBind(c)
	}

	fe, err := h.validateSignupFields(c, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if fe.HasErrors() {
		return failFields(c, fe)
	}

	if err := h.auth.Register(c.Context(), req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		return failServiceErr(c, err)
	}

	return success(c, fiber.StatusCreated, "User registered successfully")
}

type loginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	StaySignedIn *bool  `json:"stay_signed_in"`
}

// Login verifies credentials and returns an access/refresh token pair.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return failBind(c)
	}

	fe := validate.FieldErrors{}
	switch {
	case req.Email == "":
		fe.Add("email", "Email is required")
	case !validate.Email(req.Email):
		fe.Add("email", "Email must be a valid email address")
	}
	switch {
	case req.Password == "":
		fe.Add("password", "Password is required")
	case len(req.Password) < 4:
		fe.Add("password", "Password must be at least 4 characters long")
	}
	if fe.HasErrors() {
		return failFields(c, fe)
	}

	pair, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return fail(c, fiber.StatusBadRequest, "Invalid email or password")
		}
		return failServiceErr(c, err)
	}

	return c.JSON(fiber.Map{
		"status":        "success",
		"message":       "Login successful",
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges a live refresh token for a new access token.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req refreshRequest
	if err := c.Bind().JSON(&req); err != nil {
		return failBind(c)
	}

	if req.RefreshToken == "" {
		fe := validate.FieldErrors{}
		fe.Add("refresh_token", "Refresh token is required")
		return failFields(c, fe)
	}

	accessToken, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshInvalid):
			return fail(c, fiber.StatusUnauthorized, "Invalid or expired refresh token")
		case errors.Is(err, service.ErrRefreshRevoked):
			return fail(c, fiber.StatusUnauthorized, "Refresh token revoked")
		}
		return failServiceErr(c, err)
	}

	return c.JSON(fiber.Map{
		"status":       "success",
		"access_token": accessToken,
	})
}
