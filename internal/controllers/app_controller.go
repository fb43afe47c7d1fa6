package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"glnc_delivery/internal/metrics"
	"glnc_delivery/internal/middleware"
	"glnc_delivery/internal/models"
	"glnc_delivery/internal/services"
)

// --- Request bodies sent by the driver app ---

type attendanceInput struct {
	Time   string  `json:"time"`
	Lat    float64 `json:"lati"`
	Long   float64 `json:"longi"`
	Alt    float64 `json:"alti"`
	Type   uint8   `json:"type"`
	UserID flexID  `json:"user_id"`
}

type deliveryListInput struct {
	UserID flexID `json:"user_id"`
}

type deliveryActionInput struct {
	ID      flexID `json:"id"`
	Comment string `json:"comment"`
}

type signDeliveryInput struct {
	DeliveryID   flexID    `json:"delivery_id"`
	Signature    string    `json:"signature"`
	InvoicePhoto string    `json:"invoice_photo"`
	Comment      string    `json:"comment"`
	Weight       flexFloat `json:"weight"`
	Satisfaction flexID    `json:"satisfaction"`
}

type signCoordinateInput struct {
	DeliveryID flexID  `json:"delivery_id"`
	UserID     flexID  `json:"user_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Altitude   float64 `json:"altitude"`
}

type currentLocationInput struct {
	UserID    flexID  `json:"user_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
}

// flexID accepts a JSON number or a numeric string. The Android app
// sends ids and ratings as strings.
type flexID uint

func (v *flexID) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "" || raw == "null" {
		*v = 0
		return nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return fmt.Errorf("expected a whole number, got %s", b)
	}
	*v = flexID(n)
	return nil
}

// flexFloat is flexID for decimals such as the delivered weight.
type flexFloat float64

func (v *flexFloat) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "" || raw == "null" {
		*v = 0
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(strings.Replace(raw, ",", ".", 1)), 64)
	if err != nil {
		return fmt.Errorf("expected a number, got %s", b)
	}
	*v = flexFloat(f)
	return nil
}

// bindApp decodes the body and answers 400 with the decoding error.
func bindApp(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body: " + err.Error()})
		return false
	}
	return true
}

// AppController serves the JSON API used by the driver app.
type AppController struct {
	svc    *services.Services
	clock  services.Clock
	tokens *middleware.TokenIssuer
	hub    *LocationHub
}

func NewAppController(svc *services.Services, clock services.Clock, tokens *middleware.TokenIssuer, hub *LocationHub) *AppController {
	return &AppController{svc: svc, clock: clock, tokens: tokens, hub: hub}
}

func (ac *AppController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Code is required."})
		return
	}

	user, err := ac.svc.Auth.LoginDriver(c.Request.Context(), input.Code)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		metrics.LoginAttempts.WithLabelValues("app", "invalid").Inc()
		logrus.Warn("Failed app login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid code."})
		return
	case errors.Is(err, services.ErrAccessDenied):
		metrics.LoginAttempts.WithLabelValues("app", "denied").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied. Only drivers can use the mobile app."})
		return
	case err != nil:
		respondAppError(c, err, "logging in")
		return
	}

	token, err := ac.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		respondAppError(c, err, "logging in")
		return
	}
	metrics.LoginAttempts.WithLabelValues("app", "success").Inc()
	logrus.WithField("user_id", user.ID).Info("Driver logged in")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful.",
		"id":      user.ID,
		"userId":  user.ID,
		"user":    gin.H{"id": user.ID, "name": user.Name, "role": user.Role},
		"token":   token,
	})
}

// sameUser rejects bodies naming another user than the token's.
func sameUser(c *gin.Context, userID uint) bool {
	if userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Valid user_id is required."})
		return false
	}
	if userID != middleware.TokenUserID(c) {
		logrus.WithFields(logrus.Fields{
			"token_user_id": middleware.TokenUserID(c),
			"body_user_id":  userID,
		}).Warn("App request for another user denied")
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied."})
		return false
	}
	return true
}

// ownDelivery loads a delivery and checks it is assigned to the caller.
func (ac *AppController) ownDelivery(c *gin.Context, id uint) (*models.Delivery, bool) {
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Valid id is required."})
		return nil, false
	}
	d, err := ac.svc.Deliveries.Get(c.Request.Context(), id)
	if err != nil {
		respondAppError(c, err, "loading the delivery")
		return nil, false
	}
	if d.UserID != middleware.TokenUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Delivery is not assigned to you."})
		return nil, false
	}
	return d, true
}

// SaveAttendance records a clock-in or clock-out sample.
func (ac *AppController) SaveAttendance(c *gin.Context) {
	var input attendanceInput
	if !bindApp(c, &input) {
		return
	}
	if !sameUser(c, uint(input.UserID)) {
		return
	}
	at, err := ac.clock.ParseWire(input.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid time format. Expected: yyyy-MM-dd HH:mm:ss"})
		return
	}

	_, err = ac.svc.Pointages.Record(c.Request.Context(), services.AttendanceInput{
		Time:   at,
		Lat:    input.Lat,
		Long:   input.Long,
		Alt:    input.Alt,
		Type:   input.Type,
		UserID: uint(input.UserID),
	})
	if err != nil {
		respondAppError(c, err, "saving attendance location")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Attendance location saved successfully."})
}

// ListDeliveries returns the caller's deliveries leaving within the next days.
func (ac *AppController) ListDeliveries(c *gin.Context) {
	var input deliveryListInput
	if !bindApp(c, &input) {
		return
	}
	if !sameUser(c, uint(input.UserID)) {
		return
	}

	deliveries, err := ac.svc.Deliveries.UpcomingForDriver(c.Request.Context(), uint(input.UserID))
	if err != nil {
		respondError(c, err, "fetching deliveries")
		return
	}

	out := make([]gin.H, 0, len(deliveries))
	for _, d := range deliveries {
		returned := 0
		if d.ReturnFlag {
			returned = 1
		}
		detail := ""
		if d.Description != nil {
			detail = *d.Description
		}
		out = append(out, gin.H{
			"id":                d.ID,
			"date_time_leave":   ac.clock.FormatWire(&d.LeaveAt),
			"date_time_arrival": ac.clock.FormatWire(d.ArrivalAt),
			"return_flag":       returned,
			"client":            d.Client,
			"Address":           d.Address,
			"Contact":           d.Contacts,
			"Detail":            detail,
		})
	}
	logrus.WithFields(logrus.Fields{"user_id": uint(input.UserID), "count": len(out)}).Info("Retrieved upcoming deliveries")
	c.JSON(http.StatusOK, out)
}

func (ac *AppController) AcceptDelivery(c *gin.Context) {
	var input deliveryActionInput
	if !bindApp(c, &input) {
		return
	}
	if _, ok := ac.ownDelivery(c, uint(input.ID)); !ok {
		return
	}
	if _, err := ac.svc.Deliveries.Accept(c.Request.Context(), uint(input.ID)); err != nil {
		respondAppError(c, err, "accepting delivery")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Delivery accepted."})
}

func (ac *AppController) CancelDelivery(c *gin.Context) {
	var input deliveryActionInput
	if !bindApp(c, &input) {
		return
	}
	if _, ok := ac.ownDelivery(c, uint(input.ID)); !ok {
		return
	}
	already, err := ac.svc.Deliveries.Cancel(c.Request.Context(), uint(input.ID), input.Comment)
	if err != nil {
		respondAppError(c, err, "cancelling delivery")
		return
	}
	if already {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Delivery is already cancelled."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Delivery cancelled successfully."})
}

// SignDelivery completes a delivery with the client's signature.
func (ac *AppController) SignDelivery(c *gin.Context) {
	var input signDeliveryInput
	if !bindApp(c, &input) {
		return
	}
	if _, ok := ac.ownDelivery(c, uint(input.DeliveryID)); !ok {
		return
	}
	_, err := ac.svc.Deliveries.Complete(c.Request.Context(), uint(input.DeliveryID), services.Completion{
		Signature:    input.Signature,
		InvoicePhoto: input.InvoicePhoto,
		Comment:      input.Comment,
		Weight:       float64(input.Weight),
		Satisfaction: int(input.Satisfaction),
	})
	if err != nil {
		respondAppError(c, err, "completing delivery")
		return
	}
	logrus.WithField("delivery_id", uint(input.DeliveryID)).Info("Delivery completed with signature")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Delivery validated successfully!"})
}

func (ac *AppController) SaveSignCoordinate(c *gin.Context) {
	var input signCoordinateInput
	if !bindApp(c, &input) {
		return
	}
	if !sameUser(c, uint(input.UserID)) {
		return
	}
	if _, ok := ac.ownDelivery(c, uint(input.DeliveryID)); !ok {
		return
	}
	_, err := ac.svc.Geolocation.RecordSigningLocation(c.Request.Context(), uint(input.DeliveryID), uint(input.UserID), services.Coordinates{
		Lat:  input.Latitude,
		Long: input.Longitude,
		Alt:  input.Altitude,
	})
	if err != nil {
		respondAppError(c, err, "saving coordinate")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coordinate saved successfully."})
}

// SaveCurrentLocation stores a ping and pushes it to the live map.
func (ac *AppController) SaveCurrentLocation(c *gin.Context) {
	var input currentLocationInput
	if !bindApp(c, &input) {
		return
	}
	if !sameUser(c, uint(input.UserID)) {
		return
	}
	ctx := c.Request.Context()
	row, err := ac.svc.Geolocation.RecordDriverLocation(ctx, uint(input.UserID), services.Coordinates{
		Lat:  input.Latitude,
		Long: input.Longitude,
		Alt:  input.Altitude,
	})
	if err != nil {
		respondAppError(c, err, "saving location")
		return
	}

	if ac.hub != nil {
		update := LocationUpdate{
			UserID:    uint(input.UserID),
			Latitude:  row.Lat,
			Longitude: row.Long,
			Altitude:  row.Alt,
			DateTime:  ac.clock.FormatWire(&row.DateTime),
		}
		if user, err := ac.svc.Users.Get(ctx, uint(input.UserID)); err == nil {
			update.UserName = user.Name
		}
		ac.hub.PublishLocation(update)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Location saved successfully."})
}
