package routes

import (
	"github.com/gin-gonic/gin"

	"glnc_delivery/internal/controllers"
	"glnc_delivery/internal/middleware"
)

func AdminRoutes(r *gin.Engine, d Deps) {
	admin := controllers.NewAdminController(d.Services, d.Clock)

	group := r.Group("/admin")
	group.Use(middleware.RequireAdminSession(d.Sessions, d.Services.Users))
	{
		group.GET("/dashboard", admin.Dashboard)

		group.GET("/trucks", admin.ListTrucks)
		group.GET("/trucks/:id", admin.GetTruck)
		group.POST("/trucks", admin.CreateTruck)
		group.PUT("/trucks/:id", admin.UpdateTruck)
		group.DELETE("/trucks/:id", admin.DeleteTruck)

		group.GET("/suppliers", admin.ListSuppliers)
		group.GET("/suppliers/:id", admin.GetSupplier)
		group.POST("/suppliers", admin.CreateSupplier)
		group.PUT("/suppliers/:id", admin.UpdateSupplier)
		group.DELETE("/suppliers/:id", admin.DeleteSupplier)

		group.GET("/users", admin.ListUsers)
		group.GET("/users/:id", admin.GetUser)
		group.POST("/users", admin.CreateUser)
		group.PUT("/users/:id", admin.UpdateUser)
		group.DELETE("/users/:id", admin.DeleteUser)
		group.GET("/users/:id/deliveries", admin.ListUserDeliveries)
		group.GET("/users/:id/pointages", admin.ListUserPointages)
		group.GET("/users/:id/locations", admin.UserDriverLocations)
		group.GET("/users/:id/signing-locations", admin.UserSigningLocations)

		group.GET("/deliveries", admin.ListDeliveries)
		group.GET("/deliveries/:id", admin.GetDelivery)
		group.POST("/deliveries", admin.CreateDelivery)
		group.PUT("/deliveries/:id", admin.UpdateDelivery)
		group.POST("/deliveries/:id/cancel", admin.CancelDelivery)
		group.DELETE("/deliveries/:id", admin.DeleteDelivery)

		group.GET("/planning/events", admin.PlanningEvents)
		group.GET("/planning/conflicts", admin.PlanningConflicts)
		group.POST("/planning/deliveries", admin.PlanningCreate)

		group.GET("/pointages", admin.ListPointages)

		group.GET("/locations", admin.ListDriverLocations)
		group.GET("/locations/latest", admin.LatestDriverLocation)
		group.GET("/signing-locations", admin.ListSigningLocations)

		group.GET("/apikeys", admin.ListApiKeys)
		group.POST("/apikeys", admin.GenerateApiKey)
		group.DELETE("/apikeys/:id", admin.DeleteApiKey)
	}
}
