package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/elexus/guest-registry/internal/core/ports"
)

// Auth validates the bearer JWT, rejects revoked tokens, and injects the
// session claims into the request context. revoker may be nil when no
// revocation store is configured; revocation checks are then skipped.
func Auth(jwtSecret string, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			jti, _ := claims["jti"].(string)
			if revoker != nil && jti != "" {
				revoked, err := revoker.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					return fmt.Errorf("revocation check: %w", err)
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			// JSON numbers decode into float64 in MapClaims.
			sub, _ := claims["sub"].(float64)
			c.Set("account_id", int(sub))
			c.Set("username", claims["username"])
			c.Set("role", claims["role"])
			c.Set("full_name", claims["full_name"])
			c.Set("jti", jti)
			if exp, ok := claims["exp"].(float64); ok {
				c.Set("token_exp", time.Unix(int64(exp), 0))
			}

			return next(c)
		}
	}
}
