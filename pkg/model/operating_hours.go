package model

import "time"

const OperatingHoursID = "operatingHours"

type DayHours struct {
	Open   string `json:"open" bson:"open" validate:"omitempty,hhmm"`
	Close  string `json:"close" bson:"close" validate:"omitempty,hhmm"`
	Closed bool   `json:"closed" bson:"closed"`
}

// OperatingHours is the weekly schedule stored as the settings/operatingHours
// document.
type OperatingHours struct {
	Monday    DayHours   `json:"monday" bson:"monday"`
	Tuesday   DayHours   `json:"tuesday" bson:"tuesday"`
	Wednesday DayHours   `json:"wednesday" bson:"wednesday"`
	Thursday  DayHours   `json:"thursday" bson:"thursday"`
	Friday    DayHours   `json:"friday" bson:"friday"`
	Saturday  DayHours   `json:"saturday" bson:"saturday"`
	Sunday    DayHours   `json:"sunday" bson:"sunday"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	UpdatedBy string     `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
}

// Day returns the entry for a weekday.
func (h *OperatingHours) Day(day time.Weekday) DayHours {
	switch day {
	case time.Monday:
		return h.Monday
	case time.Tuesday:
		return h.Tuesday
	case time.Wednesday:
		return h.Wednesday
	case time.Thursday:
		return h.Thursday
	case time.Friday:
		return h.Friday
	case time.Saturday:
		return h.Saturday
	default:
		return h.Sunday
	}
}

// WeekOrder lists weekdays the way the hours table shows them, Monday first.
var WeekOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// DefaultOperatingHours is served when no schedule has been stored.
func DefaultOperatingHours() *OperatingHours {
	weekday := DayHours{Open: "06:00", Close: "22:00", Closed: false}
	return &OperatingHours{
		Monday:    weekday,
		Tuesday:   weekday,
		Wednesday: weekday,
		Thursday:  weekday,
		Friday:    weekday,
		Saturday:  DayHours{Open: "08:00", Close: "20:00", Closed: false},
		Sunday:    DayHours{Open: "08:00", Close: "18:00", Closed: false},
	}
}

const (
	GymOpen   = "open"
	GymClosed = "closed"
)

// GymStatus is the evaluated open/closed state at a moment. Boundary is the
// next HH:MM at which the state flips, empty when the gym is closed all day.
type GymStatus struct {
	State    string `json:"state"`
	Boundary string `json:"boundary,omitempty"`
}

func (s GymStatus) IsOpen() bool {
	return s.State == GymOpen
}
