package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ApiKeyValidator interface {
	Validate(ctx context.Context, value string) (bool, error)
}

// RequireApiKey checks the "code" query parameter against stored keys.
func RequireApiKey(keys ApiKeyValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		if code == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key (code) is required"})
			return
		}
		ok, err := keys.Validate(c.Request.Context(), code)
		if err != nil {
			logrus.WithError(err).Error("failed to validate api key")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while validating the API key"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}
		c.Next()
	}
}
