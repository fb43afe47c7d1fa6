package routes

import (
	"github.com/gin-gonic/gin"

	"glnc_delivery/internal/middleware"
)

func WebSocketRoutes(r *gin.Engine, d Deps) {
	wsRoutes := r.Group("/admin/ws")
	wsRoutes.Use(middleware.RequireAdminSession(d.Sessions, d.Services.Users))
	{
		wsRoutes.GET("/locations", d.Hub.HandleLocationWebSocket)
	}
}
