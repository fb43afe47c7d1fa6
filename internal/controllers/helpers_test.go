package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"glnc_delivery/internal/middleware"
	"glnc_delivery/internal/models"
	"glnc_delivery/internal/notify"
	"glnc_delivery/internal/services"
	"glnc_delivery/internal/storage"
	"glnc_delivery/internal/testutil"
)

type env struct {
	db     *gorm.DB
	svc    *services.Services
	clock  services.Clock
	tokens *middleware.TokenIssuer
	hub    *LocationHub
	router *gin.Engine

	driver, other, admin *models.User
	truck                *models.Truck
	supplier             *models.Supplier
}

func newEnv(t *testing.T, now time.Time) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &env{
		db:     testutil.NewDB(t),
		clock:  services.Clock{Loc: testutil.Loc, Now: func() time.Time { return now }},
		tokens: middleware.NewTokenIssuer("test-secret", time.Hour),
		hub:    NewLocationHub(),
	}
	t.Cleanup(e.hub.Close)

	e.svc = services.New(services.Deps{
		DB:            e.db,
		Hasher:        testutil.Hasher(),
		Clock:         e.clock,
		Mailer:        notify.LogMailer{},
		Events:        notify.NopPublisher{},
		Images:        storage.NewImageStore(t.TempDir(), e.clock.Current),
		SubjectPrefix: "Livraison",
	})

	e.driver = testutil.CreateUser(t, e.db, "Bob", "22222", models.RoleDriver)
	e.other = testutil.CreateUser(t, e.db, "Dan", "33333", models.RoleDriver)
	e.admin = testutil.CreateUser(t, e.db, "Alice", "11111", models.RoleAdmin)
	e.truck = testutil.CreateTruck(t, e.db, "AB-123", "#00ff00")
	e.supplier = testutil.CreateSupplier(t, e.db, "Acme", "ops@acme.test", false)

	r := gin.New()
	app := NewAppController(e.svc, e.clock, e.tokens, e.hub)
	r.POST("/api/app/login", app.Login)
	authed := r.Group("/api/app", e.tokens.RequireDriverToken())
	authed.POST("/excel/pointer", app.SaveAttendance)
	authed.POST("/delivery", app.ListDeliveries)
	authed.POST("/delivery_accept", app.AcceptDelivery)
	authed.POST("/delivery_cancel", app.CancelDelivery)
	authed.POST("/sign_delivery", app.SignDelivery)
	authed.POST("/sign_coordinate", app.SaveSignCoordinate)
	authed.POST("/current_location", app.SaveCurrentLocation)

	export := NewExportController(e.svc, e.clock)
	r.GET("/api/Excel/CAMIONS", export.Trucks)
	r.GET("/api/Excel/Fournisseurs", export.Suppliers)
	r.GET("/api/Excel/LGEOLOCs", export.SigningLocations)
	r.GET("/api/Excel/EVENEMENTS", export.DriverLocations)
	r.GET("/api/Excel/LIVRAISONS", export.Deliveries)

	admin := NewAdminController(e.svc, e.clock)
	r.GET("/admin/trucks/:id", admin.GetTruck)
	r.POST("/admin/trucks", admin.CreateTruck)
	r.POST("/admin/deliveries", admin.CreateDelivery)
	r.POST("/admin/deliveries/:id/cancel", admin.CancelDelivery)
	r.GET("/admin/planning/conflicts", admin.PlanningConflicts)

	r.GET("/ws", e.hub.HandleLocationWebSocket)
	e.router = r
	return e
}

func (e *env) token(t *testing.T, u *models.User) string {
	t.Helper()
	tok, err := e.tokens.GenerateToken(u.ID, u.Role)
	require.NoError(t, err)
	return tok
}

func (e *env) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
