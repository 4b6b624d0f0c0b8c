package events

import (
	"context"
	"fmt"
	"time"

	"gymbook/pkg/kafka"
	"gymbook/pkg/metrics"
	"gymbook/pkg/middleware"
	"gymbook/pkg/model"
)

const Source = "bookings-service"

// Publisher announces booking lifecycle changes to other services.
type Publisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking) error
}

type producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer producer
	now      func() time.Time
}

func NewKafkaPublisher(p *kafka.Producer) Publisher {
	return newKafkaPublisher(p)
}

func newKafkaPublisher(p producer) *kafkaPublisher {
	return &kafkaPublisher{producer: p, now: time.Now}
}

// Publish sends the event keyed by booking id, so every event of one booking
// lands on the same partition in order.
func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	event := model.BookingEvent{
		Type:       eventType,
		Booking:    *booking,
		OccurredAt: p.now().UTC(),
	}

	msg, err := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(event).
		WithEventType(eventType).
		WithCorrelationID(middleware.RequestID(ctx)).
		WithSource(Source).
		Build()
	if err != nil {
		metrics.RecordEventPublished(eventType, err)
		return fmt.Errorf("failed to build %s event: %w", eventType, err)
	}

	err = p.producer.Publish(ctx, msg)
	metrics.RecordEventPublished(eventType, err)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every event. Used when
// Kafka is disabled.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, *model.Booking) error {
	return nil
}
