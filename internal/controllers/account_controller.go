package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"glnc_delivery/internal/metrics"
	"glnc_delivery/internal/middleware"
	"glnc_delivery/internal/services"
	"glnc_delivery/internal/session"
)

type loginInput struct {
	Code string `json:"code" binding:"required"`
}

// AccountController handles the dashboard login backed by Redis sessions.
type AccountController struct {
	auth         *services.AuthService
	sessions     *session.Store
	secureCookie bool
}

func NewAccountController(auth *services.AuthService, sessions *session.Store, secureCookie bool) *AccountController {
	return &AccountController{auth: auth, sessions: sessions, secureCookie: secureCookie}
}

// Login accepts a 5-digit code and opens a session for admins only.
func (ac *AccountController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code is required."})
		return
	}

	user, err := ac.auth.LoginAdmin(c.Request.Context(), input.Code)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		metrics.LoginAttempts.WithLabelValues("web", "invalid").Inc()
		logrus.Warn("Failed web login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid code."})
		return
	case errors.Is(err, services.ErrAccessDenied):
		metrics.LoginAttempts.WithLabelValues("web", "denied").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied. Only administrators can log in to the dashboard."})
		return
	case err != nil:
		respondError(c, err, "logging in")
		return
	}

	id, err := ac.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err, "logging in")
		return
	}
	metrics.LoginAttempts.WithLabelValues("web", "success").Inc()
	logrus.WithField("user_id", user.ID).Info("Admin logged in")

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, id, int(ac.sessions.TTL().Seconds()), "/", "", ac.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (ac *AccountController) Logout(c *gin.Context) {
	if id, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := ac.sessions.Destroy(c.Request.Context(), id); err != nil {
			logrus.WithError(err).Warn("Failed to destroy session")
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ac.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ac *AccountController) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.CurrentUser(c)})
}
