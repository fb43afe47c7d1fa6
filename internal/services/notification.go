package services

import (
	"context"
	"fmt"
	"strconv"

	logrus "github.com/sirupsen/logrus"

	"glnc_delivery/internal/metrics"
	"glnc_delivery/internal/models"
)

// Mailer sends a single plain-text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EventPublisher broadcasts delivery lifecycle changes to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, event DeliveryEvent) error
}

type DeliveryEvent struct {
	Type       string `json:"type"`
	DeliveryID uint   `json:"delivery_id"`
	UserID     uint   `json:"user_id"`
	TruckID    uint   `json:"truck_id"`
	At         string `json:"at"`
}

const (
	EventAccepted  = "delivery.accepted"
	EventCancelled = "delivery.cancelled"
	EventCompleted = "delivery.completed"
)

// Notifier emails the supplier of a completed delivery.
type Notifier struct {
	mailer Mailer
	prefix string
	clock  Clock
}

func NewNotifier(mailer Mailer, subjectPrefix string, clock Clock) *Notifier {
	return &Notifier{mailer: mailer, prefix: subjectPrefix, clock: clock}
}

// DeliveryCompleted sends one message per supplier address. Failures are
// logged and counted; the caller is never told.
func (n *Notifier) DeliveryCompleted(ctx context.Context, d *models.Delivery) {
	if n == nil || n.mailer == nil || d.Supplier == nil || !d.Supplier.Notify {
		return
	}
	recipients := d.Supplier.Recipients()
	if len(recipients) == 0 {
		return
	}

	subject, body := n.compose(d)
	for _, to := range recipients {
		entry := logrus.WithFields(logrus.Fields{"delivery_id": d.ID, "email": to})
		if err := n.mailer.Send(ctx, to, subject, body); err != nil {
			metrics.NotificationsSent.WithLabelValues("failed").Inc()
			entry.WithError(err).Error("failed to send delivery notification")
			continue
		}
		metrics.NotificationsSent.WithLabelValues("sent").Inc()
		entry.Info("delivery notification sent")
	}
}

func (n *Notifier) compose(d *models.Delivery) (string, string) {
	subject := fmt.Sprintf("%s#%s#%s#%s", n.prefix, d.Client, n.clock.FormatWire(d.ArrivalAt), d.Invoice)

	weight := "Non spécifié"
	if d.Weight > 0 {
		weight = strconv.FormatFloat(d.Weight, 'f', -1, 64)
	}
	driver := "no name"
	if d.User != nil && d.User.Name != "" {
		driver = d.User.Name
	}
	body := fmt.Sprintf("La marchandise a été livrée ce jour.\nPoids de: %s\nlivreur: %s", weight, driver)
	return subject, body
}
