package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute labels requests that did not match any registered route,
// keeping raw paths out of label values.
const unmatchedRoute = "unmatched"

// Middleware records request count and latency per route template.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else if !c.Response().Committed {
					status = http.StatusInternalServerError
				}
			}

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			method := c.Request().Method

			HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
