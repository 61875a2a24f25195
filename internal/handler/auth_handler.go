package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"scheduler/internal/logger"
	"scheduler/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	log         *logger.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	PlaintextPassword string `json:"plaintextPassword"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email             string `json:"email"`
	PlaintextPassword string `json:"plaintextPassword"`
}

// LoginResponse carries the bearer token for later requests.
type LoginResponse struct {
	AuthToken string `json:"authToken"`
}

// Signup godoc
// @Summary Create a user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c, h.log, err)
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.PlaintextPassword)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary Log in and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c, h.log, err)
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.PlaintextPassword)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{AuthToken: token})
}
