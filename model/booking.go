package model

import "time"

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
	// BookingCanceled is part of the persisted enum for wire compatibility
	// but no code path transitions a booking into it.
	BookingCanceled BookingStatus = "CANCELED"
)

type Booking struct {
	ID       int64
	Start    time.Time
	End      time.Time
	Status   BookingStatus
	BookerID int64
	ItemID   int64
}
