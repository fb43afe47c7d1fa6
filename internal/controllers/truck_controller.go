package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glnc_delivery/internal/services"
)

type truckInput struct {
	License string `json:"license"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Color   string `json:"color"`
}

func (in truckInput) toService() services.TruckInput {
	return services.TruckInput{License: in.License, Brand: in.Brand, Model: in.Model, Color: in.Color}
}

func (ac *AdminController) ListTrucks(c *gin.Context) {
	trucks, err := ac.svc.Trucks.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetching trucks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"trucks": trucks})
}

func (ac *AdminController) GetTruck(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	truck, err := ac.svc.Trucks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "fetching the truck")
		return
	}
	c.JSON(http.StatusOK, gin.H{"truck": truck})
}

func (ac *AdminController) CreateTruck(c *gin.Context) {
	var input truckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return
	}
	truck, err := ac.svc.Trucks.Create(c.Request.Context(), input.toService())
	if err != nil {
		respondError(c, err, "creating the truck")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Truck created successfully.", "truck": truck})
}

func (ac *AdminController) UpdateTruck(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input truckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return
	}
	truck, err := ac.svc.Trucks.Update(c.Request.Context(), id, input.toService())
	if err != nil {
		respondError(c, err, "updating the truck")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Truck updated successfully.", "truck": truck})
}

func (ac *AdminController) DeleteTruck(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ac.svc.Trucks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "deleting the truck")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Truck deleted successfully."})
}
