package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"glnc_delivery/internal/metrics"
	"glnc_delivery/internal/models"
)

// ImageStore persists a base64 encoded image and returns its stored path.
type ImageStore interface {
	Save(encoded string) (string, error)
}

// DeliveryInput carries the planning fields of a delivery.
type DeliveryInput struct {
	UserID        uint
	TruckID       uint
	SupplierID    uint
	AppointmentAt time.Time
	LeaveAt       time.Time
	Client        string
	Address       string
	Contacts      string
	Invoice       string
	Weight        float64
	Comment       string
	Description   *string
}

// DeliveryUpdate is a full overwrite of a delivery row by id.
type DeliveryUpdate struct {
	DeliveryInput
	AcceptAt     *time.Time
	ArrivalAt    *time.Time
	Satisfaction *int
	ReturnFlag   bool
}

// Completion is what the driver app submits when the client signs.
type Completion struct {
	Signature    string
	InvoicePhoto string
	Comment      string
	Weight       float64
	Satisfaction int
}

type DeliveryService struct {
	db       *gorm.DB
	clock    Clock
	notifier *Notifier
	events   EventPublisher
	images   ImageStore
}

func NewDeliveryService(db *gorm.DB, clock Clock, notifier *Notifier, events EventPublisher, images ImageStore) *DeliveryService {
	return &DeliveryService{db: db, clock: clock, notifier: notifier, events: events, images: images}
}

func (s *DeliveryService) withRelations(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("User").Preload("Truck").Preload("Supplier")
}

// List returns every delivery, newest appointment first.
func (s *DeliveryService) List(ctx context.Context) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	err := s.withRelations(ctx).Order("date_time_appointment DESC").Find(&deliveries).Error
	return deliveries, err
}

func (s *DeliveryService) Get(ctx context.Context, id uint) (*models.Delivery, error) {
	var d models.Delivery
	if err := s.withRelations(ctx).First(&d, id).Error; err != nil {
		return nil, translate(err, "delivery", id)
	}
	return &d, nil
}

// ListByUser returns a driver's deliveries, earliest appointment first.
func (s *DeliveryService) ListByUser(ctx context.Context, userID uint) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	err := s.withRelations(ctx).
		Where("user_id = ?", userID).
		Order("date_time_appointment ASC").
		Find(&deliveries).Error
	return deliveries, err
}

// UpcomingForDriver returns the driver's deliveries leaving between today
// 00:00 and the end of the third day after today.
func (s *DeliveryService) UpcomingForDriver(ctx context.Context, userID uint) ([]models.Delivery, error) {
	from := s.clock.StartOfDay(s.clock.Current())
	to := from.AddDate(0, 0, 4).Add(-time.Second)

	var deliveries []models.Delivery
	err := s.withRelations(ctx).
		Where("user_id = ?", userID).
		Where("date_time_leave >= ? AND date_time_leave <= ?", from, to).
		Order("date_time_appointment ASC").
		Find(&deliveries).Error
	return deliveries, err
}

// Between returns deliveries whose appointment falls on a calendar day in
// [start, end], earliest first. Reversed bounds are swapped.
func (s *DeliveryService) Between(ctx context.Context, start, end time.Time) ([]models.Delivery, error) {
	from, to := s.dayRange(start, end)
	var deliveries []models.Delivery
	err := s.withRelations(ctx).
		Where("date_time_appointment >= ? AND date_time_appointment < ?", from, to).
		Order("date_time_appointment ASC").
		Find(&deliveries).Error
	return deliveries, err
}

// dayRange turns two dates into a half-open [from, to) covering both days.
func (s *DeliveryService) dayRange(start, end time.Time) (time.Time, time.Time) {
	from, to := s.clock.StartOfDay(start), s.clock.StartOfDay(end)
	if to.Before(from) {
		from, to = to, from
	}
	return from, to.AddDate(0, 0, 1)
}

func (s *DeliveryService) Create(ctx context.Context, in DeliveryInput) (*models.Delivery, error) {
	in, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	d := models.Delivery{}
	assignPlanning(&d, in)
	if err := s.db.WithContext(ctx).Create(&d).Error; err != nil {
		return nil, translate(err, "delivery", 0)
	}
	metrics.DeliveryTransitions.WithLabelValues("created").Inc()
	return s.Get(ctx, d.ID)
}

// Update overwrites every field of the delivery.
func (s *DeliveryService) Update(ctx context.Context, id uint, in DeliveryUpdate) (*models.Delivery, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	planning, err := s.validate(ctx, in.DeliveryInput)
	if err != nil {
		return nil, err
	}
	if in.Satisfaction != nil && !validSatisfaction(*in.Satisfaction) {
		return nil, invalid("satisfaction must be 1, 2 or 3")
	}
	if in.ArrivalAt != nil && in.AcceptAt == nil {
		return nil, invalid("an arrived delivery must have an accept time")
	}

	assignPlanning(d, planning)
	d.AcceptAt = in.AcceptAt
	d.ArrivalAt = in.ArrivalAt
	d.Satisfaction = in.Satisfaction
	d.ReturnFlag = in.ReturnFlag
	d.User, d.Truck, d.Supplier = nil, nil, nil

	if err := s.db.WithContext(ctx).Save(d).Error; err != nil {
		return nil, translate(err, "delivery", id)
	}
	return s.Get(ctx, id)
}

func (s *DeliveryService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Delivery{}, id)
	if res.Error != nil {
		return translate(res.Error, "delivery", id)
	}
	if res.RowsAffected == 0 {
		return notFound("delivery", id)
	}
	return nil
}

// Accept marks the delivery as in transit. Accepting twice is a no-op.
func (s *DeliveryService) Accept(ctx context.Context, id uint) (*models.Delivery, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch d.Status() {
	case models.StatusCancelled:
		return nil, conflict("delivery %d is cancelled", id)
	case models.StatusCompleted:
		return nil, conflict("delivery %d is already completed", id)
	case models.StatusInTransit:
		return d, nil
	}

	now := s.clock.Current()
	if err := s.db.WithContext(ctx).Model(&models.Delivery{}).Where("id = ?", id).
		Update("date_time_accept", now).Error; err != nil {
		return nil, err
	}
	d.AcceptAt = &now
	metrics.DeliveryTransitions.WithLabelValues("accepted").Inc()
	s.publish(ctx, EventAccepted, d, now)
	return d, nil
}

// Cancel sets the return flag and stores comment as the description.
// It reports true when the delivery was already cancelled, in which case
// nothing is written.
func (s *DeliveryService) Cancel(ctx context.Context, id uint, comment string) (bool, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if d.ReturnFlag {
		return true, nil
	}
	if d.IsCompleted() {
		return false, conflict("delivery %d is already completed", id)
	}

	updates := map[string]interface{}{"return_flag": true}
	if c := strings.TrimSpace(comment); c != "" {
		updates["description"] = c
	}
	if err := s.db.WithContext(ctx).Model(&models.Delivery{}).Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return false, err
	}
	metrics.DeliveryTransitions.WithLabelValues("cancelled").Inc()
	logrus.WithFields(logrus.Fields{"delivery_id": id, "comment": comment}).Info("delivery cancelled")
	s.publish(ctx, EventCancelled, d, s.clock.Current())
	return false, nil
}

// Complete records the signature and closes the delivery. Accept and arrival
// are both set to the same instant. The supplier is notified afterwards;
// notification failures do not affect the result.
func (s *DeliveryService) Complete(ctx context.Context, id uint, c Completion) (*models.Delivery, error) {
	v := &validation{}
	v.check(validSatisfaction(c.Satisfaction), "satisfaction must be 1, 2 or 3")
	v.check(c.Weight > 0, "weight must be greater than 0")
	if err := v.err(); err != nil {
		return nil, err
	}

	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch d.Status() {
	case models.StatusCancelled:
		return nil, conflict("delivery %d is cancelled", id)
	case models.StatusCompleted:
		return nil, conflict("delivery %d is already completed", id)
	}

	signature, err := s.storeImage(c.Signature)
	if err != nil {
		return nil, err
	}
	photo, err := s.storeImage(c.InvoicePhoto)
	if err != nil {
		return nil, err
	}

	now := s.clock.Current()
	satisfaction := c.Satisfaction
	d.AcceptAt = &now
	d.ArrivalAt = &now
	d.SignClient = signature
	d.InvoiceImage = photo
	d.Comment = strings.TrimSpace(c.Comment)
	d.Weight = c.Weight
	d.Satisfaction = &satisfaction

	if err := s.db.WithContext(ctx).Model(&models.Delivery{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"date_time_accept":    now,
			"date_time_arrival":   now,
			"sign_client":         signature,
			"invoice_image":       photo,
			"comment":             d.Comment,
			"weight":              d.Weight,
			"satisfaction_client": satisfaction,
		}).Error; err != nil {
		return nil, err
	}
	metrics.DeliveryTransitions.WithLabelValues("completed").Inc()

	s.notifier.DeliveryCompleted(ctx, d)
	s.publish(ctx, EventCompleted, d, now)
	return d, nil
}

func (s *DeliveryService) storeImage(encoded string) (*string, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, nil
	}
	if s.images == nil {
		return &encoded, nil
	}
	path, err := s.images.Save(encoded)
	if err != nil {
		return nil, invalid("image could not be stored: %v", err)
	}
	return &path, nil
}

func (s *DeliveryService) publish(ctx context.Context, kind string, d *models.Delivery, at time.Time) {
	if s.events == nil {
		return
	}
	event := DeliveryEvent{
		Type:       kind,
		DeliveryID: d.ID,
		UserID:     d.UserID,
		TruckID:    d.TruckID,
		At:         at.In(s.clock.Loc).Format(WireLayout),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"delivery_id": d.ID, "event": kind}).
			Warn("failed to publish delivery event")
	}
}

// validate checks the planning fields and that every referenced row exists.
func (s *DeliveryService) validate(ctx context.Context, in DeliveryInput) (DeliveryInput, error) {
	in.Client = strings.TrimSpace(in.Client)
	in.Address = strings.TrimSpace(in.Address)
	in.Contacts = strings.TrimSpace(in.Contacts)
	in.Invoice = strings.TrimSpace(in.Invoice)
	in.Comment = strings.TrimSpace(in.Comment)

	v := &validation{}
	v.check(in.UserID != 0, "driver is required")
	v.check(in.TruckID != 0, "truck is required")
	v.check(in.SupplierID != 0, "supplier is required")
	v.check(!in.AppointmentAt.IsZero(), "appointment date & time is required")
	v.check(!in.LeaveAt.IsZero(), "leave date & time is required")
	if !in.AppointmentAt.IsZero() && !in.LeaveAt.IsZero() {
		v.check(in.LeaveAt.After(in.AppointmentAt), "leave date & time must be after appointment date & time")
	}
	for _, f := range []struct{ name, value string }{
		{"client", in.Client}, {"address", in.Address}, {"contacts", in.Contacts}, {"invoice", in.Invoice},
	} {
		v.check(f.value != "", "%s is required", f.name)
		v.check(utf8.RuneCountInString(f.value) <= 250, "%s must be at most 250 characters", f.name)
	}
	v.check(in.Weight > 0, "weight must be greater than 0")
	if err := v.err(); err != nil {
		return in, err
	}

	db := s.db.WithContext(ctx)
	var driver models.User
	if err := db.First(&driver, in.UserID).Error; err != nil {
		return in, missing(err, "driver %d not found", in.UserID)
	}
	if !driver.IsDriver() {
		v.check(false, "user %d is not a driver", in.UserID)
	}
	if err := db.First(&models.Truck{}, in.TruckID).Error; err != nil {
		return in, missing(err, "truck %d not found", in.TruckID)
	}
	if err := db.First(&models.Supplier{}, in.SupplierID).Error; err != nil {
		return in, missing(err, "supplier %d not found", in.SupplierID)
	}
	return in, v.err()
}

// missing reports an absent referenced row as a validation failure.
func missing(err error, format string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invalid(format, id)
	}
	return err
}

func assignPlanning(d *models.Delivery, in DeliveryInput) {
	d.UserID = in.UserID
	d.TruckID = in.TruckID
	d.SupplierID = in.SupplierID
	d.AppointmentAt = in.AppointmentAt
	d.LeaveAt = in.LeaveAt
	d.Client = in.Client
	d.Address = in.Address
	d.Contacts = in.Contacts
	d.Invoice = in.Invoice
	d.Weight = in.Weight
	d.Comment = in.Comment
	d.Description = in.Description
}

func validSatisfaction(v int) bool { return v >= 1 && v <= 3 }
