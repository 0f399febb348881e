package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	serviceAudience  = "lector-internal"
	maxTokenLifetime = 5 * time.Minute
)

var allowedServiceIssuers = map[string]bool{
	"lectorctl": true,
	"worker":    true,
}

// ServiceAuth guards the internal ops API with short-lived HS256 tokens.
// Tokens must name the internal audience, come from a known issuer, and
// carry a lifetime of at most five minutes. With no secret configured the
// middleware only passes requests through in dev mode.
func ServiceAuth(secret string, devMode bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				if devMode {
					return next(c)
				}
				return forbiddenService(c, "service auth is not configured")
			}

			raw := bearerToken(c.Request().Header.Get("Authorization"))
			if raw == "" {
				return forbiddenService(c, "missing bearer token")
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(raw, claims,
				func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
				jwt.WithAudience(serviceAudience),
				jwt.WithExpirationRequired(),
			)
			if err != nil || !token.Valid {
				return forbiddenService(c, "invalid service token")
			}

			if !allowedServiceIssuers[claims.Issuer] {
				return forbiddenService(c, "unknown token issuer")
			}

			if claims.IssuedAt == nil ||
				claims.ExpiresAt.Sub(claims.IssuedAt.Time) > maxTokenLifetime {
				return forbiddenService(c, "token lifetime too long")
			}

			return next(c)
		}
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func forbiddenService(c echo.Context, message string) error {
	return c.JSON(http.StatusForbidden, map[string]string{
		"error":   "error",
		"code":    "FORBIDDEN",
		"message": message,
	})
}
