package validator

import (
	"errors"
	"testing"

	"gymbook/pkg/logger"
	"gymbook/pkg/model"
)

func TestValidate(t *testing.T) {
	validator := NewHoursValidator(logger.Discard())

	tests := []struct {
		name      string
		mutate    func(h *model.OperatingHours)
		wantField string
	}{
		{name: "default schedule", mutate: func(h *model.OperatingHours) {}},
		{name: "closed day without times", mutate: func(h *model.OperatingHours) { h.Sunday = model.DayHours{Closed: true} }},
		{name: "closed day keeps stale times", mutate: func(h *model.OperatingHours) { h.Sunday.Closed = true }},
		{name: "midnight open", mutate: func(h *model.OperatingHours) { h.Monday.Open = "00:00" }},
		{name: "bad hour", mutate: func(h *model.OperatingHours) { h.Monday.Open = "24:00" }, wantField: "monday.open"},
		{name: "bad minute", mutate: func(h *model.OperatingHours) { h.Tuesday.Close = "21:60" }, wantField: "tuesday.close"},
		{name: "missing leading zero", mutate: func(h *model.OperatingHours) { h.Friday.Open = "6:00" }, wantField: "friday.open"},
		{name: "twelve hour clock", mutate: func(h *model.OperatingHours) { h.Friday.Open = "06:00 AM" }, wantField: "friday.open"},
		{name: "open day without open", mutate: func(h *model.OperatingHours) { h.Saturday.Open = "" }, wantField: "saturday.open"},
		{name: "open day without close", mutate: func(h *model.OperatingHours) { h.Saturday.Close = "" }, wantField: "saturday.close"},
		{name: "close before open", mutate: func(h *model.OperatingHours) {
			h.Wednesday = model.DayHours{Open: "22:00", Close: "06:00"}
		}, wantField: "wednesday.close"},
		{name: "close equals open", mutate: func(h *model.OperatingHours) {
			h.Thursday = model.DayHours{Open: "08:00", Close: "08:00"}
		}, wantField: "thursday.close"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours := model.DefaultOperatingHours()
			tt.mutate(hours)

			err := validator.Validate(hours)
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
