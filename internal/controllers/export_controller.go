package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"glnc_delivery/internal/models"
	"glnc_delivery/internal/services"
)

// exportDateLayouts are the date shapes accepted by LIVRAISONS.
var exportDateLayouts = []string{"2006-01-02", "2006/01/02"}

const exportError = "An error occurred while retrieving data"

// ExportController exposes raw tables to spreadsheet tooling behind an API key.
type ExportController struct {
	svc   *services.Services
	clock services.Clock
}

func NewExportController(svc *services.Services, clock services.Clock) *ExportController {
	return &ExportController{svc: svc, clock: clock}
}

func (ec *ExportController) fail(c *gin.Context, err error, what string) {
	logrus.WithError(err).Errorf("Error retrieving %s", what)
	c.JSON(http.StatusInternalServerError, gin.H{"error": exportError})
}

func (ec *ExportController) Trucks(c *gin.Context) {
	trucks, err := ec.svc.Trucks.List(c.Request.Context())
	if err != nil {
		ec.fail(c, err, "trucks data")
		return
	}
	out := make([]gin.H, 0, len(trucks))
	for _, t := range trucks {
		out = append(out, gin.H{"id": t.ID, "license": t.License, "brand": t.Brand, "model": t.Model, "color": t.Color})
	}
	c.JSON(http.StatusOK, out)
}

func (ec *ExportController) Attendances(c *gin.Context) {
	rows, err := ec.svc.Pointages.List(c.Request.Context())
	if err != nil {
		ec.fail(c, err, "attendance data")
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, a := range rows {
		out = append(out, gin.H{
			"id":      a.ID,
			"time":    ec.clock.FormatWire(&a.Time),
			"lati":    a.Lat,
			"longi":   a.Long,
			"alti":    a.Alt,
			"type":    a.Type,
			"user_id": a.UserID,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (ec *ExportController) Drivers(c *gin.Context) {
	users, err := ec.svc.Users.List(c.Request.Context())
	if err != nil {
		ec.fail(c, err, "drivers data")
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{"id": u.ID, "name": u.Name, "role": u.Role})
	}
	c.JSON(http.StatusOK, out)
}

func (ec *ExportController) Suppliers(c *gin.Context) {
	suppliers, err := ec.svc.Suppliers.List(c.Request.Context())
	if err != nil {
		ec.fail(c, err, "suppliers data")
		return
	}
	out := make([]gin.H, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, gin.H{"id": s.ID, "supplier_name": s.Name, "mail": s.Mail, "check": s.Notify})
	}
	c.JSON(http.StatusOK, out)
}

// SigningLocations exports delivery signing points, as GeoJSON with
// ?format=geojson.
func (ec *ExportController) SigningLocations(c *gin.Context) {
	rows, err := ec.svc.Geolocation.SigningLocations(c.Request.Context())
	if err != nil {
		ec.fail(c, err, "delivery geolocation data")
		return
	}

	if wantsGeoJSON(c) {
		features := make([]*gjson.Feature, 0, len(rows))
		for _, g := range rows {
			features = append(features, pointFeature(g.ID, g.SignLong, g.SignLat, g.SignAlt, map[string]interface{}{
				"delivery_id": g.DeliveryID,
				"user_id":     g.UserID,
			}))
		}
		ec.writeGeoJSON(c, features)
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, g := range rows {
		out = append(out, gin.H{
			"id":          g.ID,
			"sign_lati":   g.SignLat,
			"sign_longi":  g.SignLong,
			"sign_alti":   g.SignAlt,
			"delivery_id": g.DeliveryID,
			"user_id":     g.UserID,
		})
	}
	c.JSON(http.StatusOK, out)
}

// DriverLocations exports driver pings, as GeoJSON with ?format=geojson.
func (ec *ExportController) DriverLocations(c *gin.Context) {
	rows, err := ec.svc.Geolocation.DriverLocations(c.Request.Context())
	if err != nil {
		ec.fail(c, err, "driver geolocation data")
		return
	}

	if wantsGeoJSON(c) {
		features := make([]*gjson.Feature, 0, len(rows))
		for _, g := range rows {
			features = append(features, pointFeature(g.ID, g.Long, g.Lat, g.Alt, map[string]interface{}{
				"date_time": ec.clock.FormatWire(&g.DateTime),
			}))
		}
		ec.writeGeoJSON(c, features)
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, g := range rows {
		out = append(out, gin.H{
			"id":        g.ID,
			"lati":      g.Lat,
			"longi":     g.Long,
			"alti":      g.Alt,
			"date_time": ec.clock.FormatWire(&g.DateTime),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Deliveries exports deliveries whose appointment day lies in [start, end].
func (ec *ExportController) Deliveries(c *gin.Context) {
	start, end := c.Query("start"), c.Query("end")
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end dates are required (format: yyyy-MM-dd or yyyy/MM/dd)"})
		return
	}
	from, okFrom := ec.parseDate(start)
	to, okTo := ec.parseDate(end)
	if !okFrom || !okTo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use yyyy-MM-dd or yyyy/MM/dd"})
		return
	}

	deliveries, err := ec.svc.Deliveries.Between(c.Request.Context(), from, to)
	if err != nil {
		ec.fail(c, err, "deliveries data by date range")
		return
	}
	out := make([]gin.H, 0, len(deliveries))
	for i := range deliveries {
		out = append(out, ec.deliveryRow(&deliveries[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (ec *ExportController) deliveryRow(d *models.Delivery) gin.H {
	var accept, arrival interface{}
	if d.AcceptAt != nil {
		accept = ec.clock.FormatWire(d.AcceptAt)
	}
	if d.ArrivalAt != nil {
		arrival = ec.clock.FormatWire(d.ArrivalAt)
	}
	return gin.H{
		"id":                    d.ID,
		"date_time_appointment": ec.clock.FormatWire(&d.AppointmentAt),
		"date_time_leave":       ec.clock.FormatWire(&d.LeaveAt),
		"date_time_accept":      accept,
		"date_time_arrival":     arrival,
		"client":                d.Client,
		"address":               d.Address,
		"contacts":              d.Contacts,
		"invoice":               d.Invoice,
		"supplier_id":           d.SupplierID,
		"user_id":               d.UserID,
		"truck_id":              d.TruckID,
		"weight":                d.Weight,
		"comment":               d.Comment,
		"return_flag":           d.ReturnFlag,
		"satisfaction":          d.Satisfaction,
	}
}

func (ec *ExportController) parseDate(s string) (time.Time, bool) {
	for _, layout := range exportDateLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(s), ec.clock.Loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func wantsGeoJSON(c *gin.Context) bool {
	return strings.EqualFold(c.Query("format"), "geojson")
}

func pointFeature(id uint, long, lat, alt float64, props map[string]interface{}) *gjson.Feature {
	return &gjson.Feature{
		ID:         strconv.FormatUint(uint64(id), 10),
		Geometry:   geom.NewPointFlat(geom.XYZ, []float64{long, lat, alt}),
		Properties: props,
	}
}

func (ec *ExportController) writeGeoJSON(c *gin.Context, features []*gjson.Feature) {
	body, err := (&gjson.FeatureCollection{Features: features}).MarshalJSON()
	if err != nil {
		ec.fail(c, err, "geojson export")
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}
