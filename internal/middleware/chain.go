package middleware

import "github.com/labstack/echo/v4"

// Stage is one step of a guard. A non-nil error stops the chain and is
// returned to echo's error handler.
type Stage func(c echo.Context) error

// Chain runs stages in order before the wrapped handler, stopping at the
// first stage that fails.
func Chain(stages ...Stage) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, stage := range stages {
				if err := stage(c); err != nil {
					return err
				}
			}
			return next(c)
		}
	}
}

// FromMiddleware turns an echo middleware into a Stage. The middleware's
// next handler is a no-op, so only its side effects on c and its error remain.
func FromMiddleware(mw echo.MiddlewareFunc) Stage {
	h := mw(func(echo.Context) error { return nil })
	return func(c echo.Context) error {
		return h(c)
	}
}
