package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (ac *AdminController) ListDriverLocations(c *gin.Context) {
	ctx := c.Request.Context()
	if from, to := c.Query("from"), c.Query("to"); from != "" && to != "" {
		start, err := parseTime(ac.clock, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from: " + err.Error()})
			return
		}
		end, err := parseTime(ac.clock, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to: " + err.Error()})
			return
		}
		rows, err := ac.svc.Geolocation.DriverLocationsBetween(ctx, start, end)
		if err != nil {
			respondError(c, err, "fetching driver locations")
			return
		}
		c.JSON(http.StatusOK, gin.H{"locations": rows})
		return
	}

	rows, err := ac.svc.Geolocation.DriverLocations(ctx)
	if err != nil {
		respondError(c, err, "fetching driver locations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": rows})
}

func (ac *AdminController) LatestDriverLocation(c *gin.Context) {
	row, err := ac.svc.Geolocation.LatestDriverLocation(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetching the latest location")
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": row})
}

// UserDriverLocations returns the global ping feed; pings carry no user.
func (ac *AdminController) UserDriverLocations(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := ac.svc.Geolocation.DriverLocationsForUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "fetching driver locations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": rows})
}

func (ac *AdminController) ListSigningLocations(c *gin.Context) {
	rows, err := ac.svc.Geolocation.SigningLocations(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetching signing locations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": rows})
}

func (ac *AdminController) UserSigningLocations(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	latest, err := ac.svc.Geolocation.LatestSigningLocation(ctx, id)
	if err != nil {
		respondError(c, err, "fetching signing locations")
		return
	}
	history, err := ac.svc.Geolocation.SigningLocationsForUser(ctx, id)
	if err != nil {
		respondError(c, err, "fetching signing locations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"latest": latest, "history": history})
}
