// Package catalog holds the fixed set of bookable time slots and session
// types. It has no mutation API; changing it means shipping a new build.
package catalog

type SessionType struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Price    int    `json:"price"`
}

// Included reports whether the session is part of the base membership.
func (s SessionType) Included() bool {
	return s.Price == 0
}

var timeSlots = []string{
	"06:00 AM",
	"07:00 AM",
	"08:00 AM",
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
	"06:00 PM",
	"07:00 PM",
	"08:00 PM",
	"09:00 PM",
}

var sessionTypes = []SessionType{
	{ID: "gym", Name: "Gym Access", Duration: 120, Price: 0},
	{ID: "personal", Name: "Personal Training", Duration: 60, Price: 50},
	{ID: "yoga", Name: "Yoga Class", Duration: 60, Price: 25},
	{ID: "cardio", Name: "Cardio Session", Duration: 45, Price: 15},
	{ID: "crossfit", Name: "CrossFit Class", Duration: 60, Price: 30},
	{ID: "boxing", Name: "Boxing Training", Duration: 60, Price: 35},
}

var (
	slotIndex    = make(map[string]int, len(timeSlots))
	sessionIndex = make(map[string]SessionType, len(sessionTypes))
)

func init() {
	for i, slot := range timeSlots {
		slotIndex[slot] = i
	}
	for _, s := range sessionTypes {
		sessionIndex[s.ID] = s
	}
}

// TimeSlots returns the bookable slot labels in day order.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

func SessionTypes() []SessionType {
	out := make([]SessionType, len(sessionTypes))
	copy(out, sessionTypes)
	return out
}

func IsTimeSlot(label string) bool {
	_, ok := slotIndex[label]
	return ok
}

func LookupSession(id string) (SessionType, bool) {
	s, ok := sessionIndex[id]
	return s, ok
}
