package routes

import (
	"io"
	"net/http"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"glnc_delivery/internal/controllers"
	"glnc_delivery/internal/middleware"
	"glnc_delivery/internal/services"
	"glnc_delivery/internal/session"
)

// Deps is everything the router needs to build its controllers.
type Deps struct {
	Services       *services.Services
	Clock          services.Clock
	Sessions       *session.Store
	Tokens         *middleware.TokenIssuer
	Hub            *controllers.LocationHub
	AccessLog      io.Writer
	AllowedOrigins []string
	UploadDir      string
	SecureCookie   bool
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()

	if d.AccessLog != nil {
		r.Use(ginlog.SetLogger(
			ginlog.WithWriter(d.AccessLog),
			ginlog.WithSkipPath([]string{"/metrics", "/health"}),
		))
	}
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(d.AllowedOrigins))
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	AccountRoutes(r, d)
	AdminRoutes(r, d)
	WebSocketRoutes(r, d)
	AppRoutes(r, d)
	ExportRoutes(r, d)

	return r
}
