// Package notifications turns booking events into member-facing messages.
package notifications

import (
	"context"
	"errors"
	"fmt"

	"gymbook/internal/display"
	"gymbook/pkg/kafka"
	"gymbook/pkg/logger"
	"gymbook/pkg/metrics"
	"gymbook/pkg/model"
)

var ErrUnknownEvent = errors.New("unknown booking event type")

type Notification struct {
	UserID    string
	UserEmail string
	Subject   string
	Body      string
}

// Notifier delivers a rendered notification.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type logNotifier struct {
	log *logger.Logger
}

// NewLogNotifier writes notifications to the log. It stands in for a mail
// or push sender.
func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) Notify(_ context.Context, notification Notification) error {
	n.log.Info("Notification sent",
		"user_id", notification.UserID,
		"user_email", notification.UserEmail,
		"subject", notification.Subject,
		"body", notification.Body,
	)
	return nil
}

type Handler struct {
	notifier Notifier
	log      *logger.Logger
}

func NewHandler(notifier Notifier, log *logger.Logger) *Handler {
	return &Handler{notifier: notifier, log: log}
}

// Handle is a kafka.MessageHandler. Payloads that cannot be decoded or
// rendered are permanent failures and go to the dead letter topic.
func (h *Handler) Handle(ctx context.Context, msg kafka.Message) error {
	var event model.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		metrics.RecordEventConsumed(msg.GetEventType(), err)
		return kafka.Permanent(fmt.Errorf("failed to decode booking event: %w", err))
	}
	if event.Type == "" {
		event.Type = msg.GetEventType()
	}

	notification, err := Render(&event)
	if err != nil {
		metrics.RecordEventConsumed(event.Type, err)
		return kafka.Permanent(err)
	}

	err = h.notifier.Notify(ctx, notification)
	metrics.RecordEventConsumed(event.Type, err)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	return nil
}

// Render builds the message for an event, e.g.
// "Booking confirmed: Yoga Class on Fri, Mar 15, 2024 at 07:00 AM".
func Render(event *model.BookingEvent) (Notification, error) {
	b := event.Booking

	var subject string
	switch event.Type {
	case model.EventBookingCreated:
		subject = "Booking confirmed"
	case model.EventBookingCancelled:
		subject = "Booking cancelled"
	default:
		return Notification{}, fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}

	return Notification{
		UserID:    b.UserID,
		UserEmail: b.UserEmail,
		Subject:   subject,
		Body:      fmt.Sprintf("%s: %s on %s at %s", subject, b.SessionName, display.FormatDate(b.Date), b.TimeSlot),
	}, nil
}
