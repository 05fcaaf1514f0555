package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/classtrack/classtrack/server/auth"
	"github.com/classtrack/classtrack/store"
)

// Authenticate verifies the bearer token and loads the matching active user
// into the request context. Routes registered behind it always see a user.
func Authenticate(st *store.Store, secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			_, userID, err := auth.VerifyAccessToken(token, []byte(secret))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}

			ctx := c.Request().Context()
			user, err := st.GetUser(ctx, &store.FindUser{ID: &userID})
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to load user")
			}
			if user == nil || user.RowStatus != store.Normal {
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found or archived")
			}

			c.SetRequest(c.Request().WithContext(auth.SetUserInContext(ctx, user)))
			return next(c)
		}
	}
}

// RequireRole rejects requests whose authenticated user has none of the
// given roles. Must run behind Authenticate.
func RequireRole(roles ...store.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := auth.UserFromContext(c.Request().Context())
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}
