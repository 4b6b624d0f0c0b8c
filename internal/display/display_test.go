package display

import (
	"testing"
	"time"

	"gymbook/internal/catalog"
	"gymbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"06:00", "6:00 AM"},
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"11:59", "11:59 AM"},
		{"12:00", "12:00 PM"},
		{"13:05", "1:05 PM"},
		{"22:00", "10:00 PM"},
		{"", ""},
		{"noon", "noon"},
		{"25:00", "25:00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.input))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Fri, Mar 15, 2024", FormatDate("2024-03-15"))
	assert.Equal(t, "Mon, Jan 1, 2024", FormatDate("2024-01-01"))
	assert.Equal(t, "not-a-date", FormatDate("not-a-date"))
	assert.Equal(t, "", FormatDate(""))
}

func TestSessionOptionLabel(t *testing.T) {
	gym, ok := catalog.LookupSession("gym")
	require.True(t, ok)
	personal, ok := catalog.LookupSession("personal")
	require.True(t, ok)

	assert.Equal(t, "Gym Access - 120min (Included)", SessionOptionLabel(gym))
	assert.Equal(t, "Personal Training - 60min ($50)", SessionOptionLabel(personal))
}

func TestSessionOptions(t *testing.T) {
	options := SessionOptions()
	require.Len(t, options, 6)
	assert.Equal(t, SessionOption{ID: "gym", Label: "Gym Access - 120min (Included)"}, options[0])
	assert.Equal(t, SessionOption{ID: "boxing", Label: "Boxing Training - 60min ($35)"}, options[5])
}

func TestNewBookingCard(t *testing.T) {
	confirmed := &model.Booking{
		ID:          "b1",
		SessionName: "Yoga Class",
		Status:      model.StatusConfirmed,
		Date:        "2024-03-15",
		TimeSlot:    "07:00 AM",
		Duration:    60,
		Price:       25,
	}

	assert.Equal(t, BookingCard{
		ID:          "b1",
		Title:       "Yoga Class",
		Status:      "confirmed",
		Date:        "Fri, Mar 15, 2024",
		TimeSlot:    "07:00 AM",
		Duration:    "60 minutes",
		Price:       "$25",
		Cancellable: true,
	}, NewBookingCard(confirmed))

	included := &model.Booking{
		ID:          "b2",
		SessionName: "Gym Access",
		Status:      model.StatusCancelled,
		Date:        "2024-03-16",
		TimeSlot:    "06:00 AM",
		Duration:    120,
	}
	card := NewBookingCard(included)
	assert.Empty(t, card.Price)
	assert.False(t, card.Cancellable)
	assert.Equal(t, "120 minutes", card.Duration)

	assert.Len(t, BookingCards([]*model.Booking{confirmed, included}), 2)
	assert.NotNil(t, BookingCards(nil))
}

func TestHoursRows(t *testing.T) {
	schedule := model.DefaultOperatingHours()
	schedule.Sunday = model.DayHours{Closed: true}

	rows := HoursRows(schedule, time.Wednesday)
	require.Len(t, rows, 7)

	assert.Equal(t, HoursRow{Day: "Monday", Hours: "6:00 AM - 10:00 PM"}, rows[0])
	assert.Equal(t, HoursRow{Day: "Wednesday", Hours: "6:00 AM - 10:00 PM", Today: true}, rows[2])
	assert.Equal(t, HoursRow{Day: "Saturday", Hours: "8:00 AM - 8:00 PM"}, rows[5])
	assert.Equal(t, HoursRow{Day: "Sunday", Hours: "Closed"}, rows[6])

	for i, row := range rows {
		if i != 2 {
			assert.False(t, row.Today, row.Day)
		}
	}
}

func TestHoursRows_NilScheduleUsesDefault(t *testing.T) {
	rows := HoursRows(nil, time.Sunday)
	assert.Equal(t, HoursRow{Day: "Sunday", Hours: "8:00 AM - 6:00 PM", Today: true}, rows[6])
}

func TestStatusBanner(t *testing.T) {
	weekday := model.DayHours{Open: "06:00", Close: "22:00"}

	tests := []struct {
		name   string
		status model.GymStatus
		today  model.DayHours
		want   string
	}{
		{
			name:   "closed all day",
			status: model.GymStatus{State: model.GymClosed},
			today:  model.DayHours{Closed: true},
			want:   "Closed Today",
		},
		{
			name:   "open",
			status: model.GymStatus{State: model.GymOpen, Boundary: "22:00"},
			today:  weekday,
			want:   "Open Now · Closes at 10:00 PM",
		},
		{
			name:   "before opening",
			status: model.GymStatus{State: model.GymClosed, Boundary: "06:00"},
			today:  weekday,
			want:   "Closed · Opens at 6:00 AM",
		},
		{
			name:   "unreadable hours",
			status: model.GymStatus{State: model.GymClosed},
			today:  model.DayHours{Open: "bad", Close: "22:00"},
			want:   "Closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusBanner(tt.status, tt.today))
		})
	}
}
