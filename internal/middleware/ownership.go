package middleware

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "scheduler/internal/errors"
	"scheduler/internal/metrics"
	"scheduler/internal/model"
)

// Actions reported when a non-owner tries to change an event.
const (
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RequireEventOwner lets the request through only when the caller owns the
// event named by the :id path parameter. The handler finds the event with
// EventFrom.
func (g *Guard) RequireEventOwner(action string) echo.MiddlewareFunc {
	return Chain(
		g.ValidateID("id"),
		g.Authenticate(),
		g.LoadUser(),
		g.EventOwner("id", action),
	)
}

// ValidateID rejects path parameters that are not well-formed ids.
func (g *Guard) ValidateID(param string) Stage {
	return func(c echo.Context) error {
		id := c.Param(param)
		if !model.IsValidID(id) {
			return g.reject(c, fmt.Errorf("%w: malformed id %q", apperrors.ErrSomethingWentWrong, id), metrics.ReasonBadID)
		}
		return nil
	}
}

// LoadUser resolves the token subject to a stored user.
func (g *Guard) LoadUser() Stage {
	return func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return g.reject(c, apperrors.ErrNotAuthorized, metrics.ReasonInvalidToken)
		}

		user, err := g.users.GetUser(c.Request().Context(), claims.Subject)
		if err != nil {
			var notFound *apperrors.NotFoundError
			if errors.As(err, &notFound) {
				return g.reject(c, fmt.Errorf("%w: %v", apperrors.ErrNotAuthorized, err), metrics.ReasonUnknownUser)
			}
			g.log.Error(c.Request().Context(), "load token subject", zap.String("subject", claims.Subject), zap.Error(err))
			return toHTTPError(err)
		}

		c.Set(userKey, user)
		return nil
	}
}

// EventOwner loads the event and checks it belongs to the loaded user.
func (g *Guard) EventOwner(param, action string) Stage {
	return func(c echo.Context) error {
		user, ok := UserFrom(c)
		if !ok {
			return g.reject(c, apperrors.ErrNotAuthorized, metrics.ReasonUnknownUser)
		}

		id := c.Param(param)
		event, err := g.events.GetEvent(c.Request().Context(), id)
		if err != nil {
			var notFound *apperrors.NotFoundError
			if errors.As(err, &notFound) {
				return g.reject(c, err, metrics.ReasonNotFound)
			}
			g.log.Error(c.Request().Context(), "load event", zap.String("event_id", id), zap.Error(err))
			return toHTTPError(err)
		}

		if !event.OwnedBy(user.ID) {
			return g.reject(c, &apperrors.OwnershipError{Resource: "Event", ID: id, Action: action}, metrics.ReasonNotOwner)
		}

		c.Set(eventKey, event)
		return nil
	}
}
