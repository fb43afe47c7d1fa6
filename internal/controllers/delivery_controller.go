package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"glnc_delivery/internal/services"
)

type deliveryInput struct {
	UserID        uint    `json:"user_id"`
	TruckID       uint    `json:"truck_id"`
	SupplierID    uint    `json:"supplier_id"`
	AppointmentAt string  `json:"date_time_appointment"`
	LeaveAt       string  `json:"date_time_leave"`
	Client        string  `json:"client"`
	Address       string  `json:"address"`
	Contacts      string  `json:"contacts"`
	Invoice       string  `json:"invoice"`
	Weight        float64 `json:"weight"`
	Comment       string  `json:"comment"`
	Description   *string `json:"description"`
}

type deliveryUpdateInput struct {
	deliveryInput
	AcceptAt     string `json:"date_time_accept"`
	ArrivalAt    string `json:"date_time_arrival"`
	Satisfaction *int   `json:"satisfaction_client"`
	ReturnFlag   bool   `json:"return_flag"`
}

type cancelInput struct {
	Comment string `json:"comment"`
}

// toService parses the timestamps. Missing values stay zero so the service
// reports them together with the other field errors.
func (in deliveryInput) toService(clock services.Clock) (services.DeliveryInput, error) {
	out := services.DeliveryInput{
		UserID:      in.UserID,
		TruckID:     in.TruckID,
		SupplierID:  in.SupplierID,
		Client:      in.Client,
		Address:     in.Address,
		Contacts:    in.Contacts,
		Invoice:     in.Invoice,
		Weight:      in.Weight,
		Comment:     in.Comment,
		Description: in.Description,
	}
	var err error
	if out.AppointmentAt, err = optionalTime(clock, in.AppointmentAt); err != nil {
		return out, err
	}
	if out.LeaveAt, err = optionalTime(clock, in.LeaveAt); err != nil {
		return out, err
	}
	return out, nil
}

func optionalTime(clock services.Clock, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return parseTime(clock, raw)
}

func optionalTimePtr(clock services.Clock, raw string) (*time.Time, error) {
	t, err := optionalTime(clock, raw)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}

func (ac *AdminController) ListDeliveries(c *gin.Context) {
	deliveries, err := ac.svc.Deliveries.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetching deliveries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deliveries": deliveries})
}

func (ac *AdminController) GetDelivery(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	delivery, err := ac.svc.Deliveries.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "fetching the delivery")
		return
	}
	c.JSON(http.StatusOK, gin.H{"delivery": delivery})
}

func (ac *AdminController) ListUserDeliveries(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deliveries, err := ac.svc.Deliveries.ListByUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "fetching deliveries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deliveries": deliveries})
}

func (ac *AdminController) CreateDelivery(c *gin.Context) {
	var input deliveryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return
	}
	in, err := input.toService(ac.clock)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	delivery, err := ac.svc.Deliveries.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "creating the delivery")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Delivery created successfully.", "delivery": delivery})
}

func (ac *AdminController) UpdateDelivery(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input deliveryUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return
	}

	planning, err := input.deliveryInput.toService(ac.clock)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update := services.DeliveryUpdate{
		DeliveryInput: planning,
		Satisfaction:  input.Satisfaction,
		ReturnFlag:    input.ReturnFlag,
	}
	if update.AcceptAt, err = optionalTimePtr(ac.clock, input.AcceptAt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if update.ArrivalAt, err = optionalTimePtr(ac.clock, input.ArrivalAt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	delivery, err := ac.svc.Deliveries.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err, "updating the delivery")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery updated successfully.", "delivery": delivery})
}

func (ac *AdminController) CancelDelivery(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	// The body is optional; it only carries the comment.
	var input cancelInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body format: " + err.Error()})
		return
	}

	already, err := ac.svc.Deliveries.Cancel(c.Request.Context(), id, input.Comment)
	if err != nil {
		respondError(c, err, "cancelling the delivery")
		return
	}
	msg := "Delivery cancelled successfully."
	if already {
		msg = "Delivery is already cancelled."
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

func (ac *AdminController) DeleteDelivery(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ac.svc.Deliveries.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "deleting the delivery")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery deleted successfully."})
}
