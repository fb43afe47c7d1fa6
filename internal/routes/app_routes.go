package routes

import (
	"github.com/gin-gonic/gin"

	"glnc_delivery/internal/controllers"
)

// AppRoutes mounts the driver app API. Only login is public.
func AppRoutes(r *gin.Engine, d Deps) {
	app := controllers.NewAppController(d.Services, d.Clock, d.Tokens, d.Hub)

	group := r.Group("/api/app")
	group.POST("/login", app.Login)

	authed := group.Group("")
	authed.Use(d.Tokens.RequireDriverToken())
	{
		authed.POST("/excel/pointer", app.SaveAttendance)
		authed.POST("/delivery", app.ListDeliveries)
		authed.POST("/delivery_accept", app.AcceptDelivery)
		authed.POST("/delivery_cancel", app.CancelDelivery)
		authed.POST("/sign_delivery", app.SignDelivery)
		authed.POST("/sign_coordinate", app.SaveSignCoordinate)
		authed.POST("/current_location", app.SaveCurrentLocation)
	}
}
