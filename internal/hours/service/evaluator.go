package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	hourserrors "gymbook/internal/hours/errors"
	"gymbook/pkg/model"
)

// Evaluate reports whether the gym is open at now according to schedule. A
// nil schedule means the default one. Only the current day's entry is
// consulted, so after closing time the boundary is that same day's opening
// time, not the next day's.
func Evaluate(schedule *model.OperatingHours, now time.Time) (model.GymStatus, error) {
	if schedule == nil {
		schedule = model.DefaultOperatingHours()
	}

	day := schedule.Day(now.Weekday())
	if day.Closed {
		return model.GymStatus{State: model.GymClosed}, nil
	}

	open, err := minutesOfDay(day.Open)
	if err != nil {
		return model.GymStatus{State: model.GymClosed}, err
	}
	closing, err := minutesOfDay(day.Close)
	if err != nil {
		return model.GymStatus{State: model.GymClosed}, err
	}

	current := now.Hour()*60 + now.Minute()
	if current >= open && current < closing {
		return model.GymStatus{State: model.GymOpen, Boundary: day.Close}, nil
	}
	return model.GymStatus{State: model.GymClosed, Boundary: day.Open}, nil
}

func minutesOfDay(hhmm string) (int, error) {
	hours, minutes, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", hourserrors.ErrInvalidTime, hhmm)
	}
	h, err := strconv.Atoi(hours)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", hourserrors.ErrInvalidTime, hhmm)
	}
	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", hourserrors.ErrInvalidTime, hhmm)
	}
	return h*60 + m, nil
}
