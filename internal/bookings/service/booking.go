package service

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingserrors "gymbook/internal/bookings/errors"
	"gymbook/internal/bookings/events"
	"gymbook/internal/bookings/repository"
	"gymbook/internal/bookings/validator"
	"gymbook/internal/catalog"
	"gymbook/pkg/config"
	apperrors "gymbook/pkg/errors"
	"gymbook/pkg/identity"
	"gymbook/pkg/metrics"
	"gymbook/pkg/model"
	"gymbook/pkg/sanitizer"
)

const (
	isoDateLayout  = "2006-01-02"
	maxNotesLength = 500
)

type BookingService interface {
	Book(ctx context.Context, user *identity.User, req *model.BookingRequest) (*model.Booking, error)
	Create(ctx context.Context, user *identity.User, date, timeSlot, sessionTypeID, notes string) (*model.Booking, error)
	CheckAvailability(ctx context.Context, date, timeSlot string) bool
	Availability(ctx context.Context, date string) ([]model.SlotAvailability, error)
	List(ctx context.Context, user *identity.User, limit int) ([]*model.Booking, error)
	Cancel(ctx context.Context, user *identity.User, id string) error
	ListAll(ctx context.Context, user *identity.User, limit int, offset int64) ([]*model.Booking, int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	counters  repository.SlotCounterRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	counters repository.SlotCounterRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return newBookingService(repo, counters, validator, publisher, cfg)
}

func newBookingService(
	repo repository.BookingRepository,
	counters repository.SlotCounterRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) *bookingService {
	return &bookingService{
		repo:      repo,
		counters:  counters,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Book is the full booking flow behind the API: validate, pre-check
// capacity, then reserve a seat and insert the booking in one transaction.
// The pre-check only gives a fast answer; the conditional reservation is
// what actually enforces capacity.
func (s *bookingService) Book(ctx context.Context, user *identity.User, req *model.BookingRequest) (*model.Booking, error) {
	if user == nil {
		return nil, apperrors.Unauthorized("Sign in to book a session")
	}

	req.Notes = sanitizer.SanitizeNotes(req.Notes)
	if err := s.validator.Validate(req, s.today()); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "user_id", user.ID, "error", err)
		return nil, validationError(err)
	}

	if !s.CheckAvailability(ctx, req.Date, req.TimeSlot) {
		metrics.RecordSlotFull(metrics.StagePrecheck)
		s.cfg.Log.Info("Slot full at pre-check", "date", req.Date, "time_slot", req.TimeSlot)
		return nil, apperrors.SlotFull(req.Date, req.TimeSlot)
	}

	var booking *model.Booking
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.counters.Reserve(txCtx, req.Date, req.TimeSlot, s.cfg.SlotCapacity); err != nil {
			if errors.Is(err, bookingserrors.ErrSlotFull) {
				metrics.RecordSlotFull(metrics.StageReservation)
				return apperrors.SlotFull(req.Date, req.TimeSlot)
			}
			return apperrors.Internal("Failed to reserve slot", err)
		}

		created, err := s.Create(txCtx, user, req.Date, req.TimeSlot, req.SessionType, req.Notes)
		if err != nil {
			return err
		}
		booking = created
		return nil
	})
	if err != nil {
		if !apperrors.HasCode(err, apperrors.CodeSlotFull) {
			s.cfg.Log.Error("Failed to book session", "user_id", user.ID, "error", err)
		}
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	metrics.RecordBookingCreated(booking.SessionType)
	s.publish(ctx, model.EventBookingCreated, booking)
	return booking, nil
}

// Create persists a confirmed booking with the session details copied from
// the catalog. It does not check capacity.
func (s *bookingService) Create(ctx context.Context, user *identity.User, date, timeSlot, sessionTypeID, notes string) (*model.Booking, error) {
	if user == nil {
		return nil, apperrors.Unauthorized("Sign in to book a session")
	}

	session, ok := catalog.LookupSession(sessionTypeID)
	if !ok {
		return nil, apperrors.Validation("Unknown session type", map[string]any{"sessionType": sessionTypeID})
	}

	booking := &model.Booking{
		UserID:      user.ID,
		UserEmail:   user.Email,
		UserName:    sanitizer.SanitizeDisplayName(user.Name()),
		Date:        date,
		TimeSlot:    timeSlot,
		SessionType: session.ID,
		SessionName: session.Name,
		Duration:    session.Duration,
		Price:       session.Price,
		Notes:       sanitizer.Truncate(sanitizer.SanitizeNotes(notes), maxNotesLength),
		Status:      model.StatusConfirmed,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"user_id", booking.UserID,
		"date", booking.Date,
		"time_slot", booking.TimeSlot,
		"session_type", booking.SessionType,
	)
	return booking, nil
}

// CheckAvailability reports whether the slot has room. When the count cannot
// be read the configured failure policy decides the answer.
func (s *bookingService) CheckAvailability(ctx context.Context, date, timeSlot string) bool {
	count, err := s.repo.CountConfirmed(ctx, date, timeSlot)
	if err != nil {
		failOpen := s.cfg.AvailabilityPolicy != config.AvailabilityFailClosed
		metrics.RecordAvailabilityError(s.cfg.AvailabilityPolicy)
		s.cfg.Log.Warn("Availability check failed, applying failure policy",
			"date", date,
			"time_slot", timeSlot,
			"policy", s.cfg.AvailabilityPolicy,
			"available", failOpen,
			"error", err,
		)
		return failOpen
	}
	return count < int64(s.cfg.SlotCapacity)
}

func (s *bookingService) Availability(ctx context.Context, date string) ([]model.SlotAvailability, error) {
	if _, err := time.Parse(isoDateLayout, date); err != nil {
		return nil, apperrors.InvalidInput("date must be in YYYY-MM-DD format")
	}

	counts, err := s.repo.CountConfirmedByDate(ctx, date)
	if err != nil {
		s.cfg.Log.Error("Failed to load slot availability", "date", date, "error", err)
		return nil, apperrors.Internal("Failed to load availability", err)
	}

	capacity := int64(s.cfg.SlotCapacity)
	slots := catalog.TimeSlots()
	result := make([]model.SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		booked := counts[slot]
		remaining := max(capacity-booked, 0)
		result = append(result, model.SlotAvailability{
			TimeSlot:  slot,
			Booked:    booked,
			Remaining: remaining,
			Available: remaining > 0,
		})
	}
	return result, nil
}

// List returns the caller's own bookings, most recent date first.
func (s *bookingService) List(ctx context.Context, user *identity.User, limit int) ([]*model.Booking, error) {
	if user == nil {
		return nil, apperrors.Unauthorized("Sign in to view your bookings")
	}

	limit = config.NormalizePaginationLimit(limit)
	bookings, err := s.repo.FindByUser(ctx, user.ID, limit)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "user_id", user.ID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// Cancel moves a confirmed booking to cancelled and frees its seat.
// Cancelling an already cancelled booking succeeds without writing, so the
// first cancellation time is kept.
func (s *bookingService) Cancel(ctx context.Context, user *identity.User, id string) error {
	if user == nil {
		return apperrors.Unauthorized("Sign in to cancel a booking")
	}
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to load booking for cancellation", "id", id, "error", err)
		return apperrors.Internal("Failed to retrieve booking", err)
	}

	if !s.canCancel(user, booking) {
		s.cfg.Log.Warn("Cancellation denied", "id", id, "user_id", user.ID, "owner_id", booking.UserID)
		return apperrors.Forbidden("You can only cancel your own bookings")
	}

	if !booking.IsConfirmed() {
		s.cfg.Log.Debug("Booking already cancelled", "id", id)
		return nil
	}

	cancelledAt := s.now().UTC().Truncate(time.Millisecond)
	transitioned := false
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		transitioned = false
		if err := s.repo.MarkCancelled(txCtx, id, cancelledAt); err != nil {
			if errors.Is(err, bookingserrors.ErrNotConfirmed) {
				return nil
			}
			return apperrors.Internal("Failed to cancel booking", err)
		}
		if err := s.counters.Release(txCtx, booking.Date, booking.TimeSlot); err != nil {
			return apperrors.Internal("Failed to release slot", err)
		}
		transitioned = true
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return err
	}
	if !transitioned {
		return nil
	}

	booking.Status = model.StatusCancelled
	booking.CancelledAt = &cancelledAt

	metrics.RecordBookingCancelled()
	s.publish(ctx, model.EventBookingCancelled, booking)
	s.cfg.Log.Info("Booking cancelled successfully", "id", id, "user_id", user.ID)
	return nil
}

// ListAll pages through every booking, newest first. Admins only.
func (s *bookingService) ListAll(ctx context.Context, user *identity.User, limit int, offset int64) ([]*model.Booking, int64, error) {
	if user == nil {
		return nil, 0, apperrors.Unauthorized("Sign in to view bookings")
	}
	if !user.IsAdmin() {
		return nil, 0, apperrors.Forbidden("Admin access required")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", err)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list bookings", "limit", limit, "offset", offset, "error", err)
			errFind = apperrors.Internal("Failed to retrieve bookings", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// --- Helpers ---

func (s *bookingService) canCancel(user *identity.User, booking *model.Booking) bool {
	if s.cfg.CancelPolicy == config.CancelAnyone {
		return true
	}
	return booking.UserID == user.ID || user.IsAdmin()
}

func (s *bookingService) today() string {
	return s.now().In(s.cfg.Location()).Format(isoDateLayout)
}

// publish is best effort: the booking is already committed, so a broker
// failure is logged and swallowed.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if err := s.publisher.Publish(ctx, eventType, booking); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"id", booking.ID,
			"error", err,
		)
	}
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Booking validation failed", verrs.Details())
	}
	return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
}
