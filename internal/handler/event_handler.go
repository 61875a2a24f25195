package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "scheduler/internal/errors"
	"scheduler/internal/logger"
	"scheduler/internal/middleware"
	"scheduler/internal/service"
)

// EventHandler handles event endpoints.
type EventHandler struct {
	eventService service.EventService
	log          *logger.Logger
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService service.EventService, log *logger.Logger) *EventHandler {
	return &EventHandler{eventService: eventService, log: log}
}

// EventRequest carries an event's date range. Dates are pointers so an
// absent field can be told apart from an empty one.
type EventRequest struct {
	StartDate  *string `json:"startDate" example:"2024-01-01T10:00:00Z"`
	FinishDate *string `json:"finishDate" example:"2024-01-01T11:00:00Z"`
}

// ListEvents godoc
// @Summary List events
// @Description At most one filter applies, in this order: userId, date, interval[gte]+interval[lte], gte, lte.
// @Tags events
// @Produce json
// @Param userId query string false "Owner id"
// @Param date query string false "Exact start date"
// @Param interval[gte] query string false "Interval start (inclusive)"
// @Param interval[lte] query string false "Interval end (inclusive)"
// @Param gte query string false "Start date lower bound (inclusive)"
// @Param lte query string false "Start date upper bound (inclusive)"
// @Success 200 {array} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c echo.Context) error {
	filter, err := service.BuildEventFilter(c.QueryParams())
	if err != nil {
		return respondError(c, h.log, err)
	}

	events, err := h.eventService.ListEvents(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create an event owned by the caller
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EventRequest true "Event dates"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return respondError(c, h.log, apperrors.ErrNotAuthorized)
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c, h.log, err)
	}

	event, err := h.eventService.CreateEvent(c.Request().Context(), claims.Subject, req.StartDate, req.FinishDate)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, event)
}

// GetEvent godoc
// @Summary Get event by id
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.eventService.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Replace an event's dates
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body EventRequest true "Event dates"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id} [put]
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	event, ok := middleware.EventFrom(c)
	if !ok {
		return respondError(c, h.log, apperrors.ErrNotAuthorized)
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c, h.log, err)
	}

	updated, err := h.eventService.UpdateEvent(c.Request().Context(), event, req.StartDate, req.FinishDate)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	event, ok := middleware.EventFrom(c)
	if !ok {
		return respondError(c, h.log, apperrors.ErrNotAuthorized)
	}

	deleted, err := h.eventService.DeleteEvent(c.Request().Context(), event)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, deleted)
}

func malformedID(id string) error {
	return fmt.Errorf("%w: malformed id %q", apperrors.ErrSomethingWentWrong, id)
}
