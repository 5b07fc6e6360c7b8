package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// IdentityHeader carries the authenticated user ID, set by the upstream
// auth proxy. This service never authenticates; it only reads the result.
const IdentityHeader = "X-User-ID"

// identityKey is the echo context key holding the parsed caller ID.
const identityKey = "identity.userID"

// Identity parses the identity header into the request context when
// present. Routes that need a caller combine this with RequireIdentity.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(IdentityHeader)
			if raw != "" {
				userID, err := strconv.ParseUint(raw, 10, 64)
				if err != nil || userID == 0 {
					return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid identity header"})
				}

				c.Set(identityKey, userID)
			}

			return next(c)
		}
	}
}

// RequireIdentity rejects requests that arrived without an identity header.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(identityKey).(uint64); !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "identity required"})
			}

			return next(c)
		}
	}
}

// CallerID returns the authenticated caller ID, or zero when the request
// was anonymous.
func CallerID(c echo.Context) uint64 {
	if userID, ok := c.Get(identityKey).(uint64); ok {
		return userID
	}

	return 0
}
