package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/service"
)

// UserHandler handles registration, login and user management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateMeRequest carries the self-service profile update. Omitted fields are
// left untouched; a provided password is re-hashed.
type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// UpdateUserRequest carries the admin-side user update (name only).
type UpdateUserRequest struct {
	Name *string `json:"name"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error()})
	}

	user, err := h.userService.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Login with email and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error()})
	}

	token, user, err := h.userService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{Token: token, User: user})
}

// GetMe godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetMe(c echo.Context) error {
	p := middleware.PrincipalFrom(c)

	user, err := h.userService.Get(c.Request().Context(), p.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update the authenticated user's name or password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateMeRequest true "Fields to update"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	p := middleware.PrincipalFrom(c)

	var req UpdateMeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: err.Error()})
	}

	user, err := h.userService.Update(c.Request().Context(), p.ID, service.UserUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteMe godoc
// @Summary Delete the authenticated user
// @Tags users
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	p := middleware.PrincipalFrom(c)

	if err := h.userService.Delete(c.Request().Context(), p.ID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUsers godoc
// @Summary List all users (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get a user by id (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, apperrors.ErrUserNotFound)
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user's name by id (admin)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, apperrors.ErrUserNotFound)
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}

	user, err := h.userService.Update(c.Request().Context(), id, service.UserUpdate{Name: req.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user by id (admin)
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, apperrors.ErrUserNotFound)
	}

	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
