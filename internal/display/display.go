// Package display renders bookings, session types and opening hours as the
// strings shown to members.
package display

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gymbook/internal/catalog"
	"gymbook/pkg/model"
)

const (
	isoDateLayout  = "2006-01-02"
	cardDateLayout = "Mon, Jan 2, 2006"
)

// FormatTime turns a 24-hour "HH:MM" into "h:MM AM". Midnight and noon
// render as 12. Input that is not a time is returned unchanged.
func FormatTime(hhmm string) string {
	if hhmm == "" {
		return ""
	}
	hours, minutes, ok := strings.Cut(hhmm, ":")
	if !ok {
		return hhmm
	}
	h, err := strconv.Atoi(hours)
	if err != nil || h < 0 || h > 23 {
		return hhmm
	}

	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%s %s", h, minutes, ampm)
}

// FormatDate turns "2024-03-15" into "Fri, Mar 15, 2024".
func FormatDate(isoDate string) string {
	t, err := time.Parse(isoDateLayout, isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format(cardDateLayout)
}

func SessionOptionLabel(s catalog.SessionType) string {
	price := "(Included)"
	if !s.Included() {
		price = fmt.Sprintf("($%d)", s.Price)
	}
	return fmt.Sprintf("%s - %dmin %s", s.Name, s.Duration, price)
}

type SessionOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func SessionOptions() []SessionOption {
	sessions := catalog.SessionTypes()
	options := make([]SessionOption, 0, len(sessions))
	for _, s := range sessions {
		options = append(options, SessionOption{ID: s.ID, Label: SessionOptionLabel(s)})
	}
	return options
}

type BookingCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
	Duration    string `json:"duration"`
	Price       string `json:"price,omitempty"`
	Cancellable bool   `json:"cancellable"`
}

func NewBookingCard(b *model.Booking) BookingCard {
	card := BookingCard{
		ID:          b.ID,
		Title:       b.SessionName,
		Status:      b.Status,
		Date:        FormatDate(b.Date),
		TimeSlot:    b.TimeSlot,
		Duration:    fmt.Sprintf("%d minutes", b.Duration),
		Cancellable: b.IsConfirmed(),
	}
	if b.Price > 0 {
		card.Price = fmt.Sprintf("$%d", b.Price)
	}
	return card
}

func BookingCards(bookings []*model.Booking) []BookingCard {
	cards := make([]BookingCard, 0, len(bookings))
	for _, b := range bookings {
		cards = append(cards, NewBookingCard(b))
	}
	return cards
}

type HoursRow struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
	Today bool   `json:"today"`
}

// HoursRows lists the week Monday first, flagging today's row.
func HoursRows(schedule *model.OperatingHours, today time.Weekday) []HoursRow {
	if schedule == nil {
		schedule = model.DefaultOperatingHours()
	}

	rows := make([]HoursRow, 0, len(model.WeekOrder))
	for _, day := range model.WeekOrder {
		rows = append(rows, HoursRow{
			Day:   day.String(),
			Hours: DayHoursLabel(schedule.Day(day)),
			Today: day == today,
		})
	}
	return rows
}

func DayHoursLabel(entry model.DayHours) string {
	if entry.Closed {
		return "Closed"
	}
	return FormatTime(entry.Open) + " - " + FormatTime(entry.Close)
}

// StatusBanner is the one-line open/closed notice for today.
func StatusBanner(status model.GymStatus, today model.DayHours) string {
	switch {
	case today.Closed:
		return "Closed Today"
	case status.IsOpen():
		return "Open Now · Closes at " + FormatTime(status.Boundary)
	case status.Boundary == "":
		return "Closed"
	default:
		return "Closed · Opens at " + FormatTime(status.Boundary)
	}
}
