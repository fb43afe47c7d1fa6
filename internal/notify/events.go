package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	logrus "github.com/sirupsen/logrus"

	"glnc_delivery/internal/services"
)

// AMQPPublisher sends delivery events to a durable topic exchange, routed
// by event type.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	logrus.WithField("exchange", exchange).Info("connected to rabbitmq")
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event services.DeliveryEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(
		ctx,
		p.exchange,
		event.Type,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Close(); err != nil {
		logrus.WithError(err).Warn("failed to close amqp channel")
	}
	return p.conn.Close()
}

// NopPublisher drops events when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, services.DeliveryEvent) error { return nil }
