package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"glnc_delivery/internal/services"
)

// inputLayouts are the timestamp shapes accepted from the dashboard forms.
var inputLayouts = []string{
	services.WireLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTime reads s in the business zone; RFC3339 values keep their offset.
func parseTime(clock services.Clock, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(clock.Loc), nil
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, clock.Loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date format, expected yyyy-MM-dd HH:mm:ss")
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format."})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto HTTP statuses. Anything unexpected is
// logged and hidden behind a generic message naming the action.
func respondError(c *gin.Context, err error, action string) {
	status, msg := classify(err, action)
	c.JSON(status, gin.H{"error": msg})
}

// respondAppError is respondError in the mobile app's {success, message} shape.
func respondAppError(c *gin.Context, err error, action string) {
	status, msg := classify(err, action)
	c.JSON(status, gin.H{"success": false, "message": msg})
}

func classify(err error, action string) (int, string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid code."
	case errors.Is(err, services.ErrAccessDenied):
		return http.StatusForbidden, "Access denied."
	default:
		logrus.WithError(err).Errorf("Error occurred while %s", action)
		return http.StatusInternalServerError, "An error occurred while " + action + ". Please try again later."
	}
}

func optionalUint(c *gin.Context, key string) (*uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key + "."})
		return nil, false
	}
	id := uint(v)
	return &id, true
}
