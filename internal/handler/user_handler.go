package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"scheduler/internal/logger"
	"scheduler/internal/model"
	"scheduler/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
	log *logger.Logger
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// UsersResponse wraps the user list.
type UsersResponse struct {
	Users []model.User `json:"users"`
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} UsersResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, UsersResponse{Users: users})
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id := c.Param("id")
	if !model.IsValidID(id) {
		return respondError(c, h.log, malformedID(id))
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, user)
}
