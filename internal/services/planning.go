package services

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"glnc_delivery/internal/models"
)

const (
	DefaultTruckColor = "#dc3545"

	IconInTransit = "/images/marker.livraison.p.32x32.png"
	IconArrived   = "/images/marker.livraison.r.32x32.png"

	eventLayout = "2006-01-02T15:04:05"
)

// EventFilter narrows the planning calendar. Start and End are compared by
// calendar day against the appointment; both must be set to apply.
type EventFilter struct {
	Start         *time.Time
	End           *time.Time
	DriverID      *uint
	TruckID       *uint
	InTransitOnly bool
}

type CalendarEvent struct {
	ID            uint        `json:"id"`
	Title         string      `json:"title"`
	Start         string      `json:"start"`
	End           string      `json:"end"`
	Color         string      `json:"color"`
	TextColor     string      `json:"textColor"`
	StatusIcon    string      `json:"statusIcon"`
	ExtendedProps EventDetail `json:"extendedProps"`
}

type EventDetail struct {
	StatusIcon   string `json:"statusIcon"`
	DriverID     uint   `json:"driverId"`
	DriverName   string `json:"driverName"`
	TruckID      uint   `json:"truckId"`
	TruckLicense string `json:"truckLicense"`
	SupplierName string `json:"supplierName"`
	Address      string `json:"address"`
}

// ConflictCheck describes a truck assignment about to be planned.
type ConflictCheck struct {
	DriverID uint
	TruckID  uint
	Start    time.Time
	End      time.Time
}

type PlanningService struct {
	db               *gorm.DB
	clock            Clock
	deliveries       *DeliveryService
	enforceConflicts bool
}

func NewPlanningService(db *gorm.DB, clock Clock, deliveries *DeliveryService, enforceConflicts bool) *PlanningService {
	return &PlanningService{db: db, clock: clock, deliveries: deliveries, enforceConflicts: enforceConflicts}
}

// Deliveries applies f and returns the matching rows, newest appointment first.
func (s *PlanningService) Deliveries(ctx context.Context, f EventFilter) ([]models.Delivery, error) {
	q := s.deliveries.withRelations(ctx)
	if f.Start != nil && f.End != nil {
		from, to := s.deliveries.dayRange(*f.Start, *f.End)
		q = q.Where("date_time_appointment >= ? AND date_time_appointment < ?", from, to)
	}
	if f.DriverID != nil {
		q = q.Where("user_id = ?", *f.DriverID)
	}
	if f.TruckID != nil {
		q = q.Where("truck_id = ?", *f.TruckID)
	}
	if f.InTransitOnly {
		q = q.Where("date_time_accept IS NOT NULL AND date_time_arrival IS NULL")
	}

	var deliveries []models.Delivery
	err := q.Order("date_time_appointment DESC").Find(&deliveries).Error
	return deliveries, err
}

func (s *PlanningService) Events(ctx context.Context, f EventFilter) ([]CalendarEvent, error) {
	deliveries, err := s.Deliveries(ctx, f)
	if err != nil {
		return nil, err
	}
	events := make([]CalendarEvent, 0, len(deliveries))
	for _, d := range deliveries {
		events = append(events, s.toEvent(d))
	}
	return events, nil
}

func (s *PlanningService) toEvent(d models.Delivery) CalendarEvent {
	color := DefaultTruckColor
	detail := EventDetail{
		StatusIcon:   StatusIcon(d),
		DriverID:     d.UserID,
		DriverName:   "Unknown",
		TruckID:      d.TruckID,
		TruckLicense: "Unknown",
		SupplierName: "Unknown",
		Address:      d.Address,
	}
	if d.User != nil {
		detail.DriverName = d.User.Name
	}
	if d.Truck != nil {
		detail.TruckLicense = d.Truck.License
		color = NormalizeTruckColor(d.Truck.Color)
	}

	title := d.Client
	if d.Supplier != nil {
		detail.SupplierName = d.Supplier.Name
		if title == "" {
			title = d.Supplier.Name
		}
	}
	if title == "" {
		title = "Delivery"
	}

	return CalendarEvent{
		ID:            d.ID,
		Title:         title,
		Start:         d.AppointmentAt.In(s.clock.Loc).Format(eventLayout),
		End:           d.LeaveAt.In(s.clock.Loc).Format(eventLayout),
		Color:         color,
		TextColor:     ContrastTextColor(color),
		StatusIcon:    detail.StatusIcon,
		ExtendedProps: detail,
	}
}

// FindConflicts returns in-transit deliveries of the same truck inside the
// window that belong to a different driver.
func (s *PlanningService) FindConflicts(ctx context.Context, c ConflictCheck) ([]models.Delivery, error) {
	truckID := c.TruckID
	inTransit, err := s.Deliveries(ctx, EventFilter{
		Start:         &c.Start,
		End:           &c.End,
		TruckID:       &truckID,
		InTransitOnly: true,
	})
	if err != nil {
		return nil, err
	}
	var conflicts []models.Delivery
	for _, d := range inTransit {
		if d.UserID != c.DriverID {
			conflicts = append(conflicts, d)
		}
	}
	return conflicts, nil
}

// CreateDelivery plans a new delivery. The truck conflict check only blocks
// creation when enforcement is switched on.
func (s *PlanningService) CreateDelivery(ctx context.Context, in DeliveryInput) (*models.Delivery, error) {
	if s.enforceConflicts && in.TruckID != 0 && !in.AppointmentAt.IsZero() && !in.LeaveAt.IsZero() {
		conflicts, err := s.FindConflicts(ctx, ConflictCheck{
			DriverID: in.UserID,
			TruckID:  in.TruckID,
			Start:    in.AppointmentAt,
			End:      in.LeaveAt,
		})
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			logrus.WithFields(logrus.Fields{
				"truck_id":    in.TruckID,
				"user_id":     in.UserID,
				"delivery_id": conflicts[0].ID,
			}).Warn("truck already in transit with another driver")
			return nil, conflict("truck %d is in transit with another driver during this period", in.TruckID)
		}
	}
	return s.deliveries.Create(ctx, in)
}

// NormalizeTruckColor accepts "RRGGBB" or "#RRGGBB" and falls back to the
// default red for anything else.
func NormalizeTruckColor(raw string) string {
	c := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(c) != 6 {
		return DefaultTruckColor
	}
	if _, err := hex.DecodeString(c); err != nil {
		return DefaultTruckColor
	}
	return "#" + c
}

// ContrastTextColor picks black text on light backgrounds and white on dark,
// using perceived luminance 0.299R + 0.587G + 0.114B against 128.
func ContrastTextColor(color string) string {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(color), "#"))
	if err != nil || len(raw) != 3 {
		return "#ffffff"
	}
	luminance := 0.299*float64(raw[0]) + 0.587*float64(raw[1]) + 0.114*float64(raw[2])
	if luminance > 128 {
		return "#000000"
	}
	return "#ffffff"
}

// StatusIcon is empty until accepted, then in-transit, then arrived.
func StatusIcon(d models.Delivery) string {
	switch {
	case d.ArrivalAt != nil:
		return IconArrived
	case d.AcceptAt != nil:
		return IconInTransit
	default:
		return ""
	}
}
