package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured origins. A "*" entry reflects any origin so the
// dashboard and emulators can send credentials from dev hosts.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	wildcard := len(allowedOrigins) == 0
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
		}
	}
	if wildcard {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}
