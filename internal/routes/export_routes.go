package routes

import (
	"github.com/gin-gonic/gin"

	"glnc_delivery/internal/controllers"
	"glnc_delivery/internal/middleware"
)

func ExportRoutes(r *gin.Engine, d Deps) {
	export := controllers.NewExportController(d.Services, d.Clock)

	group := r.Group("/api/Excel")
	group.Use(middleware.RequireApiKey(d.Services.ApiKeys))
	{
		group.GET("/CAMIONS", export.Trucks)
		group.GET("/Attendances", export.Attendances)
		group.GET("/Drivers", export.Drivers)
		group.GET("/Fournisseurs", export.Suppliers)
		group.GET("/LGEOLOCs", export.SigningLocations)
		group.GET("/EVENEMENTS", export.DriverLocations)
		group.GET("/LIVRAISONS", export.Deliveries)
	}
}
