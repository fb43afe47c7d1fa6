package routes

import (
	"github.com/gin-gonic/gin"

	"glnc_delivery/internal/controllers"
	"glnc_delivery/internal/middleware"
)

func AccountRoutes(r *gin.Engine, d Deps) {
	account := controllers.NewAccountController(d.Services.Auth, d.Sessions, d.SecureCookie)

	group := r.Group("/account")
	{
		group.POST("/login", account.Login)
		group.POST("/logout", account.Logout)
		group.GET("/me", middleware.RequireAdminSession(d.Sessions, d.Services.Users), account.Me)
	}
}
