package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"scheduler/internal/logger"
)

// RequestContext copies the request id set by echo's RequestID middleware
// into the request context so service-level log lines carry it.
func RequestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Response().Header().Get(echo.HeaderXRequestID)
			}
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
			return next(c)
		}
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		HandleError:  true,
		LogLatency:   true,
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.String("route", v.RoutePath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			ctx := c.Request().Context()
			switch {
			case v.Status >= 500:
				log.Error(ctx, "request", append(fields, zap.Error(v.Error))...)
			case v.Error != nil:
				log.Info(ctx, "request", append(fields, zap.String("error", v.Error.Error()))...)
			default:
				log.Info(ctx, "request", fields...)
			}
			return nil
		},
	})
}
