package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymbook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbook_bookings_created_total",
			Help: "Total number of bookings created",
		},
		[]string{"session_type"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymbook_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	SlotFullRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbook_slot_full_rejections_total",
			Help: "Bookings refused because the slot had no capacity left",
		},
		[]string{"stage"},
	)

	AvailabilityCheckErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbook_availability_check_errors_total",
			Help: "Availability queries that failed and were resolved by the failure policy",
		},
		[]string{"policy"},
	)

	HoursCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbook_hours_cache_total",
			Help: "Operating hours cache lookups by result",
		},
		[]string{"result"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbook_events_published_total",
			Help: "Booking events handed to the broker",
		},
		[]string{"type", "status"},
	)

	EventsConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbook_events_consumed_total",
			Help: "Booking events processed by the notifier",
		},
		[]string{"type", "status"},
	)
)

const (
	StagePrecheck    = "precheck"
	StageReservation = "reservation"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

func RecordHTTPRequest(method, path string, status int, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

func RecordBookingCreated(sessionType string) {
	BookingsCreatedTotal.WithLabelValues(sessionType).Inc()
}

func RecordBookingCancelled() {
	BookingCancellationsTotal.Inc()
}

func RecordSlotFull(stage string) {
	SlotFullRejectionsTotal.WithLabelValues(stage).Inc()
}

func RecordAvailabilityError(policy string) {
	AvailabilityCheckErrorsTotal.WithLabelValues(policy).Inc()
}

func RecordHoursCache(result string) {
	HoursCacheTotal.WithLabelValues(result).Inc()
}

func RecordEventPublished(eventType string, err error) {
	EventsPublishedTotal.WithLabelValues(eventType, outcome(err)).Inc()
}

func RecordEventConsumed(eventType string, err error) {
	EventsConsumedTotal.WithLabelValues(eventType, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
