package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (ac *AdminController) Dashboard(c *gin.Context) {
	stats, err := ac.svc.Dashboard.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "loading the dashboard")
		return
	}
	c.JSON(http.StatusOK, stats)
}
