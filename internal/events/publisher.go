// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	amqp "github.com/rabbitmq/amqp091-go"
)

// BookingCreatedQueue is the durable queue booking events are routed to.
const BookingCreatedQueue = "booking.created"

// BookingCreated is emitted after a checkout session persisted a booking.
type BookingCreated struct {
	BookingID primitive.ObjectID `json:"bookingId"`
	TourID    primitive.ObjectID `json:"tourId"`
	UserID    primitive.ObjectID `json:"userId"`
	Price     float64            `json:"price"`
	SessionID string             `json:"sessionId"`
	CreatedAt time.Time          `json:"createdAt"`
}

//go:generate mockgen -destination=mocks/mock_publisher.go -package=mocks tour-booking/internal/events Publisher

// Publisher emits domain events.
type Publisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreated) error
	Close() error
}

var (
	_ Publisher = (*AMQPPublisher)(nil)
	_ Publisher = Nop{}
)

// AMQPPublisher publishes persistent JSON messages on a shared channel.
type AMQPPublisher struct {
	conn *amqp.Connection
	mu   sync.Mutex
	ch   *amqp.Channel
}

// NewAMQPPublisher dials the broker and declares the booking queue.
func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}

	if _, err := ch.QueueDeclare(
		BookingCreatedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: queue declare failed: %w", err)
	}

	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

// PublishBookingCreated implements Publisher.
func (p *AMQPPublisher) PublishBookingCreated(ctx context.Context, event BookingCreated) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(ctx,
		"",                  // default exchange
		BookingCreatedQueue, // routing key = queue name
		false,               // mandatory
		false,               // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// Close closes the channel and connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.ch.Close()
	return p.conn.Close()
}

// Nop discards events. Used when no broker is configured.
type Nop struct{}

// PublishBookingCreated implements Publisher.
func (Nop) PublishBookingCreated(context.Context, BookingCreated) error { return nil }

// Close implements Publisher.
func (Nop) Close() error { return nil }
