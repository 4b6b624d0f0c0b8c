package model

import (
	"time"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking is a member's reservation of one time slot on one date. The
// session fields are copied from the catalog when the booking is created and
// never re-derived, so a booking keeps describing what was actually booked.
type Booking struct {
	ID          string     `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      string     `json:"userId" bson:"userId"`
	UserEmail   string     `json:"userEmail" bson:"userEmail"`
	UserName    string     `json:"userName" bson:"userName"`
	Date        string     `json:"date" bson:"date"`
	TimeSlot    string     `json:"timeSlot" bson:"timeSlot"`
	SessionType string     `json:"sessionType" bson:"sessionType"`
	SessionName string     `json:"sessionName" bson:"sessionName"`
	Duration    int        `json:"duration" bson:"duration"`
	Price       int        `json:"price" bson:"price"`
	Notes       string     `json:"notes" bson:"notes"`
	Status      string     `json:"status" bson:"status"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// BookingRequest is what a member submits from the booking form.
type BookingRequest struct {
	Date        string `json:"date" validate:"required,iso_date"`
	TimeSlot    string `json:"timeSlot" validate:"required,time_slot"`
	SessionType string `json:"sessionType" validate:"required,max=32"`
	Notes       string `json:"notes" validate:"max=500"`
}

// SlotAvailability describes how full a single slot is on a given date.
type SlotAvailability struct {
	TimeSlot  string `json:"timeSlot"`
	Booked    int64  `json:"booked"`
	Remaining int64  `json:"remaining"`
	Available bool   `json:"available"`
}
