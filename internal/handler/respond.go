package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "scheduler/internal/errors"
	"scheduler/internal/logger"
)

// respondError converts a service error into the HTTP error echo renders.
// Unexpected failures are logged; client errors are left to the request log.
func respondError(c echo.Context, log *logger.Logger, err error) error {
	mapped := apperrors.MapErrorToHTTP(err)
	if mapped.StatusCode >= 500 {
		log.Error(c.Request().Context(), "request failed",
			zap.String("route", c.Path()),
			zap.Error(err),
		)
	}
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse()).SetInternal(err)
}

// badBody is returned when the request body cannot be decoded.
func badBody(c echo.Context, log *logger.Logger, err error) error {
	return respondError(c, log, fmt.Errorf("%w: decode body: %v", apperrors.ErrSomethingWentWrong, err))
}
