package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "gymbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 64 * 1024

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit    = 100
	DefaultBookingsListLimit  = 10
	DefaultSlotCapacity       = 20
	DefaultAvailabilityPolicy = AvailabilityFailOpen
	DefaultCancelPolicy       = CancelOwnerOnly
	DefaultGymTimeZone        = "Local"
	DefaultHoursCacheTTL      = 5 * time.Minute

	DefaultRedisAddr = "localhost:6379"

	DefaultBookingEventsTopic = "booking-events"
	DefaultNotifierGroupID    = "booking-notifier"
)

// Availability check failure policies.
const (
	AvailabilityFailOpen   = "open"
	AvailabilityFailClosed = "closed"
)

// Cancellation authorization policies.
const (
	CancelOwnerOnly = "owner"
	CancelAnyone    = "any"
)
