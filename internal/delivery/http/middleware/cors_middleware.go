package middleware

import (
	"os"

	"go-resume-backend/config"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware lets the frontend origin call this API with
// credentials. The allowlist is strict: the configured frontend URL,
// plus localhost only outside release mode.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	isProduction := os.Getenv("GIN_MODE") == "release"

	devOrigins := map[string]bool{
		"http://localhost:3000": true,
		"http://127.0.0.1:3000": true,
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		var isAllowed bool
		switch {
		case origin == "":
			// Same-origin and non-browser requests carry no Origin header.
			isAllowed = true
		case origin == cfg.FrontendURL:
			isAllowed = true
		case !isProduction && devOrigins[origin]:
			isAllowed = true
		}

		if isAllowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			c.Header("Access-Control-Max-Age", "86400")
		}

		// Caches must differentiate by Origin either way.
		c.Header("Vary", "Origin")

		if c.Request.Method == "OPTIONS" {
			if isAllowed {
				c.AbortWithStatus(204)
			} else {
				c.AbortWithStatus(403)
			}
			return
		}

		c.Next()
	}
}
