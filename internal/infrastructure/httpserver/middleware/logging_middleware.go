package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

// RequestLogging logs each handled request with the lookup parameters when
// present, so cache-miss investigations can be correlated by key and
// language.
func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			if m.logger != nil {
				fields := logrus.Fields{
					"method":     c.Request().Method,
					"path":       c.Path(),
					"status":     c.Response().Status,
					"latency_ms": time.Since(start).Milliseconds(),
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				}
				if key := c.QueryParam("key"); key != "" {
					fields["key"] = key
				}
				if lang := c.QueryParam("lang"); lang != "" {
					fields["lang"] = lang
				}
				m.logger.WithFields(fields).Debug("request handled")
			}
			return err
		}
	}
}
