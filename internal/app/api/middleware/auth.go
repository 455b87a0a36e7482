package middleware

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	cfgpkg "github.com/noortales/backend/pkg/config"
	"github.com/noortales/backend/pkg/response"
)

// SessionClaims is the JWT payload issued by the identity provider. Subject
// carries the user id.
type SessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.StandardClaims
}

// AuthMiddleware validates the bearer token on user-facing routes and stores
// user_id (and email, when present) in both gin and request context.
func AuthMiddleware(cfg *cfgpkg.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing bearer token"))
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(cfg.Auth.JWTSecret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid token"))
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_email", claims.Email)
		ctx := context.WithValue(c.Request.Context(), "user_id", claims.Subject)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the session user when a valid bearer token
// is present and lets the request through either way. Content routes use it:
// the catalog is public, but entitlement depends on who is asking.
func OptionalAuthMiddleware(cfg *cfgpkg.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw != "" {
			claims := &SessionClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(cfg.Auth.JWTSecret), nil
			})
			if err == nil && token.Valid && claims.Subject != "" {
				c.Set("user_id", claims.Subject)
				c.Set("user_email", claims.Email)
				ctx := context.WithValue(c.Request.Context(), "user_id", claims.Subject)
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}

// AdminAuthMiddleware guards admin routes with the static admin key,
// compared in constant time.
func AdminAuthMiddleware(cfg *cfgpkg.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearerToken(c)
		if cfg.Auth.AdminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(cfg.Auth.AdminKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeBadRequest, "unauthorized"))
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserID reads the authenticated user id set by AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// UserEmail reads the authenticated user's email, empty when the token
// carries none.
func UserEmail(c *gin.Context) string {
	return c.GetString("user_email")
}
