package service

import (
	"context"
	"errors"
	"time"

	"gymbook/internal/hours/cache"
	hourserrors "gymbook/internal/hours/errors"
	"gymbook/internal/hours/repository"
	"gymbook/internal/hours/validator"
	"gymbook/pkg/config"
	apperrors "gymbook/pkg/errors"
	"gymbook/pkg/identity"
	"gymbook/pkg/metrics"
	"gymbook/pkg/model"
)

// Snapshot is the schedule together with its evaluation at one instant.
type Snapshot struct {
	Schedule *model.OperatingHours
	Now      time.Time
	Status   model.GymStatus
}

// Today returns the schedule entry for the snapshot's weekday.
func (s *Snapshot) Today() model.DayHours {
	return s.Schedule.Day(s.Now.Weekday())
}

type HoursService interface {
	Schedule(ctx context.Context) (*model.OperatingHours, error)
	Status(ctx context.Context) (*Snapshot, error)
	UpdateSchedule(ctx context.Context, user *identity.User, hours *model.OperatingHours) (*model.OperatingHours, error)
}

type hoursService struct {
	repo      repository.SettingsRepository
	cache     cache.HoursCache
	validator *validator.HoursValidator
	cfg       *config.Config
	now       func() time.Time
}

// NewHoursService builds the service. hoursCache may be nil, in which case
// every read goes to the database.
func NewHoursService(
	repo repository.SettingsRepository,
	hoursCache cache.HoursCache,
	validator *validator.HoursValidator,
	cfg *config.Config,
) HoursService {
	return newHoursService(repo, hoursCache, validator, cfg)
}

func newHoursService(
	repo repository.SettingsRepository,
	hoursCache cache.HoursCache,
	validator *validator.HoursValidator,
	cfg *config.Config,
) *hoursService {
	return &hoursService{
		repo:      repo,
		cache:     hoursCache,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Schedule returns the stored weekly schedule, or the default one when none
// has been saved yet.
func (s *hoursService) Schedule(ctx context.Context) (*model.OperatingHours, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			metrics.RecordHoursCache(metrics.CacheError)
			s.cfg.Log.Warn("Hours cache read failed, falling back to database", "error", err)
		case cached != nil:
			metrics.RecordHoursCache(metrics.CacheHit)
			return cached, nil
		default:
			metrics.RecordHoursCache(metrics.CacheMiss)
		}
	}

	hours, err := s.repo.FindOperatingHours(ctx)
	if err != nil {
		if !errors.Is(err, hourserrors.ErrNotFound) {
			s.cfg.Log.Error("Failed to load operating hours", "error", err)
			return nil, apperrors.Internal("Failed to load operating hours", err)
		}
		s.cfg.Log.Debug("No operating hours stored, using defaults")
		hours = model.DefaultOperatingHours()
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, hours, s.cfg.HoursCacheTTL); err != nil {
			s.cfg.Log.Warn("Failed to populate hours cache", "error", err)
		}
	}
	return hours, nil
}

// Status evaluates the schedule at the current time in the gym's time zone.
// Unreadable stored times are logged and reported as closed.
func (s *hoursService) Status(ctx context.Context) (*Snapshot, error) {
	schedule, err := s.Schedule(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.cfg.Location())
	status, err := Evaluate(schedule, now)
	if err != nil {
		s.cfg.Log.Warn("Stored operating hours are invalid", "weekday", now.Weekday().String(), "error", err)
	}

	return &Snapshot{Schedule: schedule, Now: now, Status: status}, nil
}

// UpdateSchedule replaces the weekly schedule. Admins only.
func (s *hoursService) UpdateSchedule(ctx context.Context, user *identity.User, hours *model.OperatingHours) (*model.OperatingHours, error) {
	if user == nil {
		return nil, apperrors.Unauthorized("Sign in to update operating hours")
	}
	if !user.IsAdmin() {
		return nil, apperrors.Forbidden("Admin access required")
	}
	if hours == nil {
		return nil, apperrors.InvalidInput("Operating hours are required")
	}

	if err := s.validator.Validate(hours); err != nil {
		s.cfg.Log.Warn("Operating hours validation failed", "user_id", user.ID, "error", err)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.Validation("Operating hours validation failed", verrs.Details())
		}
		return nil, apperrors.Validation("Operating hours validation failed", map[string]any{"error": err.Error()})
	}

	updatedAt := s.now().UTC().Truncate(time.Millisecond)
	hours.UpdatedAt = &updatedAt
	hours.UpdatedBy = user.ID

	if err := s.repo.SaveOperatingHours(ctx, hours); err != nil {
		s.cfg.Log.Error("Failed to save operating hours", "user_id", user.ID, "error", err)
		return nil, apperrors.Internal("Failed to save operating hours", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.cfg.Log.Error("Failed to invalidate hours cache, stale hours may be served until expiry",
				"ttl", s.cfg.HoursCacheTTL,
				"error", err,
			)
		}
	}

	s.cfg.Log.Info("Operating hours updated successfully", "user_id", user.ID)
	return hours, nil
}
