//go:build api

package testdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tour-booking/internal/events"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ErrNoMessage is returned when no event arrives before the deadline.
var ErrNoMessage = errors.New("no message received")

// RabbitMQContainer wraps a RabbitMQ testcontainer for API tests.
type RabbitMQContainer struct {
	Container testcontainers.Container
	URL       string
	conn      *amqp.Connection
	ch        *amqp.Channel
}

// SetupRabbitMQ starts a RabbitMQ testcontainer and opens a consumer channel.
func SetupRabbitMQ(ctx context.Context) (*RabbitMQContainer, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "rabbitmq:3-alpine",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	port, err := container.MappedPort(ctx, "5672")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	url := fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())

	conn, err := amqp.Dial(url)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}

	// Same arguments as the publisher so either side may declare first.
	if _, err := ch.QueueDeclare(events.BookingCreatedQueue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &RabbitMQContainer{
		Container: container,
		URL:       url,
		conn:      conn,
		ch:        ch,
	}, nil
}

// Cleanup closes the consumer connection and terminates the container.
func (rc *RabbitMQContainer) Cleanup(ctx context.Context) error {
	if rc.conn != nil {
		_ = rc.conn.Close()
	}
	if rc.Container != nil {
		return rc.Container.Terminate(ctx)
	}
	return nil
}

// Purge drops every pending booking event.
func (rc *RabbitMQContainer) Purge() error {
	_, err := rc.ch.QueuePurge(events.BookingCreatedQueue, false)
	return err
}

// NextBookingCreated polls the booking queue until an event arrives or timeout elapses.
func (rc *RabbitMQContainer) NextBookingCreated(timeout time.Duration) (events.BookingCreated, error) {
	var event events.BookingCreated

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		msg, ok, err := rc.ch.Get(events.BookingCreatedQueue, true)
		if err != nil {
			return event, err
		}
		if !ok {
			time.Sleep(50 * time.Millisecond)
			continue
		}
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return event, fmt.Errorf("decode booking event: %w", err)
		}
		return event, nil
	}
	return event, ErrNoMessage
}
