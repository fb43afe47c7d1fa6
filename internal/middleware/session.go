package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"glnc_delivery/internal/models"
	"glnc_delivery/internal/services"
	"glnc_delivery/internal/session"
)

// SessionCookie names the cookie carrying the admin session id.
const SessionCookie = "glnc_session"

type UserGetter interface {
	Get(ctx context.Context, id uint) (*models.User, error)
}

// RequireAdminSession resolves the session cookie to a user on every request
// and requires the admin role.
func RequireAdminSession(store *session.Store, users UserGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}

		userID, err := store.Resolve(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				logrus.WithError(err).Error("failed to resolve admin session")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
			return
		}

		user, err := users.Get(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, services.ErrNotFound) {
				logrus.WithError(err).WithField("user_id", userID).Error("failed to load session user")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin role required."})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextRole, user.Role)
		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the admin loaded by RequireAdminSession.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUser); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
