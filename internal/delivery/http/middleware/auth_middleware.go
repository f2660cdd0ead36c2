package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go-resume-backend/config"
	"go-resume-backend/internal/delivery/http/response"
	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the Clerk session token and stores the
// subject in the request context. It does NOT require a local profile
// row: a fresh identity is authenticated before it ever claims a
// username.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// 1. Authorization header
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Clerk session cookie
			cookie, err := c.Cookie("__session")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or __session cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				// HS256 - local development tokens
				if cfg.ClerkJWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but CLERK_JWT_SECRET is not configured")
				}
				return []byte(cfg.ClerkJWTSecret), nil
			}

			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				// RS256 - Clerk production tokens, verified against JWKS
				return jwksProvider.KeyFunc(token)
			}

			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})

		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			response.Error(c, http.StatusUnauthorized, "Token has no subject", nil)
			c.Abort()
			return
		}
		sid, _ := claims["sid"].(string)

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeySessionID), sid)

		c.Next()
	}
}
