package model

import "time"

// SlotCounter holds the number of confirmed seats reserved for a (date, time
// slot) pair. Its _id is the slot key, so at most one counter exists per slot
// and the conditional increment on it is atomic.
type SlotCounter struct {
	ID        string    `bson:"_id" json:"id"`
	Date      string    `bson:"date" json:"date"`
	TimeSlot  string    `bson:"timeSlot" json:"timeSlot"`
	Confirmed int       `bson:"confirmed" json:"confirmed"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func SlotKey(date, timeSlot string) string {
	return date + "|" + timeSlot
}
