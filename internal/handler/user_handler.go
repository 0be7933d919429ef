package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/roombook/backend/internal/domain"
	"github.com/roombook/backend/internal/service"
)

// UserHandler handles administrator user creation.
type UserHandler struct {
	users *service.UserService
	auth  *AuthHandler
}

// NewUserHandler creates a new user handler. It shares the auth handler's
// signup-field validation.
func NewUserHandler(users *service.UserService, auth *AuthHandler) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// Register sets up the user routes.
func (h *UserHandler) Register(app *fiber.App, requireAuth, requireAdmin fiber.Handler) {
	admin := app.Group("/user", requireAuth, requireAdmin)
	admin.Post("/", h.Create)
}

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// Create validates and creates a user with an optional explicit role.
func (h *UserHandler) Create(c fiber.Ctx) error {
	var req createUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return failBind(c)
	}

	fe, err := h.auth.validateSignupFields(c, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	role := domain.Role(req.Role)
	if req.Role != "" && !role.Valid() {
		fe.Add("role", "role must be either USER or ADMIN")
	}
	if fe.HasErrors() {
		return failFields(c, fe)
	}

	err = h.users.CreateUser(c.Context(), service.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
	})
	if err != nil {
		return failServiceErr(c, err)
	}

	return success(c, fiber.StatusCreated, "User created successfully")
}
