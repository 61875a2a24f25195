package middleware

import (
	"errors"
	"fmt"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"scheduler/internal/auth"
	apperrors "scheduler/internal/errors"
	"scheduler/internal/logger"
	"scheduler/internal/metrics"
	"scheduler/internal/model"
	"scheduler/internal/service"
)

// Context keys set by the guards.
const (
	claimsKey = "claims"
	userKey   = "user"
	eventKey  = "event"
)

// tokenLookup accepts the token with or without the "Bearer " prefix.
const tokenLookup = "header:" + echo.HeaderAuthorization + ":Bearer ," + "header:" + echo.HeaderAuthorization

// Guard builds the authentication and ownership middleware.
type Guard struct {
	tokens *auth.TokenService
	users  service.UserService
	events service.EventService
	log    *logger.Logger
}

// NewGuard creates a guard backed by the token service and the user and event services.
func NewGuard(tokens *auth.TokenService, users service.UserService, events service.EventService, log *logger.Logger) *Guard {
	return &Guard{
		tokens: tokens,
		users:  users,
		events: events,
		log:    log,
	}
}

// Authenticate verifies the bearer token and stores its claims in the
// context. GET requests pass through untouched.
func (g *Guard) Authenticate() Stage {
	return FromMiddleware(echojwt.WithConfig(echojwt.Config{
		Skipper: func(c echo.Context) bool {
			return c.Request().Method == http.MethodGet
		},
		TokenLookup: tokenLookup,
		ContextKey:  claimsKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return g.tokens.Verify(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrSigningSecretMissing) {
				return g.reject(c, apperrors.ErrSigningSecretMissing, metrics.ReasonNoSecret)
			}
			return g.reject(c, fmt.Errorf("%w: %v", apperrors.ErrNotAuthorized, err), metrics.ReasonInvalidToken)
		},
	}))
}

// RequireAuth rejects requests without a valid bearer token.
func (g *Guard) RequireAuth() echo.MiddlewareFunc {
	return Chain(g.Authenticate())
}

// ClaimsFrom returns the verified claims stored by Authenticate.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// UserFrom returns the user loaded by the ownership guard.
func UserFrom(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userKey).(*model.User)
	return user, ok && user != nil
}

// EventFrom returns the event loaded by the ownership guard.
func EventFrom(c echo.Context) (*model.Event, bool) {
	event, ok := c.Get(eventKey).(*model.Event)
	return event, ok && event != nil
}

// reject logs and counts a refused request and converts err into the
// HTTP error echo renders.
func (g *Guard) reject(c echo.Context, err error, reason string) error {
	metrics.AuthRejections.WithLabelValues(reason).Inc()

	httpErr := toHTTPError(err)
	g.log.Debug(c.Request().Context(), "request rejected",
		zap.String("reason", reason),
		zap.String("path", c.Path()),
		zap.Int("status", httpErr.Code),
		zap.Error(err),
	)
	return httpErr
}

func toHTTPError(err error) *echo.HTTPError {
	mapped := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse()).SetInternal(err)
}
