package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/classtrack/classtrack/server/internal/observability"
)

// RequestLogger attaches a request-scoped logger with a generated request
// ID to the request context and logs one line per handled request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqCtx := observability.NewRequestContext(logger)
			ctx := observability.WithRequestContext(c.Request().Context(), reqCtx)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, reqCtx.RequestID)

			err := next(c)

			status := c.Response().Status
			if httpErr, ok := err.(*echo.HTTPError); ok {
				status = httpErr.Code
			}
			duration := time.Since(reqCtx.StartTime)
			observability.GlobalMetrics().RecordRequest(duration, status >= 500)
			reqCtx.With(
				slog.String(observability.LogFieldMethod, c.Request().Method),
				slog.String(observability.LogFieldPath, c.Request().URL.Path),
				slog.Int(observability.LogFieldStatus, status),
				slog.Int64(observability.LogFieldDuration, duration.Milliseconds()),
			).Info("request handled")
			return err
		}
	}
}
