package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glnc_delivery/internal/models"
)

// ListPointages returns every attendance sample, or only those in
// [from, to] when both query parameters are given.
func (ac *AdminController) ListPointages(c *gin.Context) {
	var (
		rows []models.AttendanceTracking
		err  error
	)
	if from, to := c.Query("from"), c.Query("to"); from != "" && to != "" {
		start, perr := parseTime(ac.clock, from)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from: " + perr.Error()})
			return
		}
		end, perr := parseTime(ac.clock, to)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to: " + perr.Error()})
			return
		}
		rows, err = ac.svc.Pointages.ByRange(c.Request.Context(), start, end)
	} else {
		rows, err = ac.svc.Pointages.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err, "fetching attendance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pointages": rows})
}

func (ac *AdminController) ListUserPointages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := ac.svc.Pointages.ByUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "fetching attendance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pointages": rows})
}
