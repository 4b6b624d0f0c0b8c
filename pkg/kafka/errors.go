package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/segmentio/kafka-go"
)

var (
	ErrProducerClosed = errors.New("kafka producer is closed")
	ErrConsumerClosed = errors.New("kafka consumer is closed")
	ErrInvalidMessage = errors.New("invalid message")
	ErrEmptyKey       = errors.New("message key cannot be empty")
	ErrEmptyValue     = errors.New("message value cannot be empty")

	// ErrPermanentFailure marks a handler error that retrying cannot fix,
	// such as an undecodable payload.
	ErrPermanentFailure = errors.New("permanent failure")
)

// Permanent wraps err so the consumer skips retries for it.
func Permanent(err error) error {
	return fmt.Errorf("%w: %w", ErrPermanentFailure, err)
}

// IsTransient reports whether err is worth retrying: broker errors flagged
// temporary, network timeouts and deadline expiry.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, ErrPermanentFailure) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var kerr kafka.Error
	if errors.As(err, &kerr) {
		return kerr.Temporary()
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	// Handler errors without a classification are retried up to the limit.
	return true
}

func ShouldRetry(err error, attempt, maxRetries int) bool {
	return attempt < maxRetries && IsTransient(err)
}
