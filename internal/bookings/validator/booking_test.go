package validator

import (
	"errors"
	"strings"
	"testing"

	"gymbook/pkg/logger"
	"gymbook/pkg/model"
)

func TestValidate(t *testing.T) {
	validator := NewBookingValidator(logger.Discard())
	const today = "2024-03-15"

	valid := func() model.BookingRequest {
		return model.BookingRequest{
			Date:        "2024-03-15",
			TimeSlot:    "07:00 AM",
			SessionType: "yoga",
			Notes:       "first class",
		}
	}

	tests := []struct {
		name      string
		mutate    func(r *model.BookingRequest)
		wantField string
	}{
		{name: "valid request", mutate: func(r *model.BookingRequest) {}},
		{name: "future date", mutate: func(r *model.BookingRequest) { r.Date = "2024-04-01" }},
		{name: "empty notes", mutate: func(r *model.BookingRequest) { r.Notes = "" }},
		{name: "notes of exactly 500 runes", mutate: func(r *model.BookingRequest) { r.Notes = strings.Repeat("é", 500) }},
		{name: "missing date", mutate: func(r *model.BookingRequest) { r.Date = "" }, wantField: "date"},
		{name: "malformed date", mutate: func(r *model.BookingRequest) { r.Date = "15/03/2024" }, wantField: "date"},
		{name: "impossible date", mutate: func(r *model.BookingRequest) { r.Date = "2024-02-30" }, wantField: "date"},
		{name: "past date", mutate: func(r *model.BookingRequest) { r.Date = "2024-03-14" }, wantField: "date"},
		{name: "unknown time slot", mutate: func(r *model.BookingRequest) { r.TimeSlot = "10:00 PM" }, wantField: "timeSlot"},
		{name: "24h time slot", mutate: func(r *model.BookingRequest) { r.TimeSlot = "07:00" }, wantField: "timeSlot"},
		{name: "missing session type", mutate: func(r *model.BookingRequest) { r.SessionType = "" }, wantField: "sessionType"},
		{name: "unknown session type", mutate: func(r *model.BookingRequest) { r.SessionType = "pilates" }, wantField: "sessionType"},
		{name: "notes too long", mutate: func(r *model.BookingRequest) { r.Notes = strings.Repeat("a", 501) }, wantField: "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := validator.Validate(&req, today)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() error = %v, want ValidationErrors", err)
			}
			if _, ok := verrs.Details()[tt.wantField]; !ok {
				t.Errorf("Validate() errors %v do not mention %q", verrs, tt.wantField)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "timeSlot", Message: "timeSlot is required"},
	}

	want := "validation failed: 2 error(s): [date: date is required; timeSlot: timeSlot is required]"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := (ValidationErrors{}).Error(); got != "" {
		t.Errorf("empty Error() = %q, want empty", got)
	}
}
