package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"glnc_delivery/internal/services"
)

// PlanningEvents feeds the calendar. start and end are optional and only
// apply together.
func (ac *AdminController) PlanningEvents(c *gin.Context) {
	var f services.EventFilter
	if start, end := c.Query("start"), c.Query("end"); start != "" && end != "" {
		from, err := parseTime(ac.clock, start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start: " + err.Error()})
			return
		}
		to, err := parseTime(ac.clock, end)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end: " + err.Error()})
			return
		}
		f.Start, f.End = &from, &to
	}

	var ok bool
	if f.DriverID, ok = optionalUint(c, "driverId"); !ok {
		return
	}
	if f.TruckID, ok = optionalUint(c, "truckId"); !ok {
		return
	}
	f.InTransitOnly, _ = strconv.ParseBool(c.Query("inTransitOnly"))

	events, err := ac.svc.Planning.Events(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "fetching planning events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// PlanningConflicts runs the truck assignment check for a prospective delivery.
func (ac *AdminController) PlanningConflicts(c *gin.Context) {
	driverID, ok := optionalUint(c, "driverId")
	if !ok {
		return
	}
	truckID, ok := optionalUint(c, "truckId")
	if !ok {
		return
	}
	if driverID == nil || truckID == nil || c.Query("start") == "" || c.Query("end") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "driverId, truckId, start and end are required."})
		return
	}
	start, err := parseTime(ac.clock, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start: " + err.Error()})
		return
	}
	end, err := parseTime(ac.clock, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end: " + err.Error()})
		return
	}

	conflicts, err := ac.svc.Planning.FindConflicts(c.Request.Context(), services.ConflictCheck{
		DriverID: *driverID,
		TruckID:  *truckID,
		Start:    start,
		End:      end,
	})
	if err != nil {
		respondError(c, err, "checking truck conflicts")
		return
	}
	ids := make([]uint, 0, len(conflicts))
	for _, d := range conflicts {
		ids = append(ids, d.ID)
	}
	c.JSON(http.StatusOK, gin.H{"hasConflict": len(ids) > 0, "deliveryIds": ids})
}

// PlanningCreate creates a delivery from the calendar modal.
func (ac *AdminController) PlanningCreate(c *gin.Context) {
	var input deliveryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body format: " + err.Error()})
		return
	}
	in, err := input.toService(ac.clock)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	delivery, err := ac.svc.Planning.CreateDelivery(c.Request.Context(), in)
	if err != nil {
		respondAppError(c, err, "creating the delivery")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Delivery created successfully", "id": delivery.ID})
}
