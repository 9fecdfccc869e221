package model

import (
	"math"
	"time"

	"innstay/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldHotelID     = "hotel_id"
	FieldRoomID      = "room_id"
	FieldCustomerID  = "customer_id"
	FieldGuestName   = "guest_name"
	FieldGuestPhone  = "guest_phone"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldStatus      = "status"
	FieldTotalAmount = "total_amount"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// transitions is the only place a status change is allowed to come from.
// Cancelled is terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]

	return ok
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// ActiveStatuses are the statuses that block a date range. A cancelled
// booking never makes dates unavailable.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func (s Status) Active() bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}

	return false
}

// Booking reserves either a single room (RoomID set) or a whole property
// (RoomID nil), depending on the hotel's rental mode. GuestName and
// GuestPhone are only filled for walk-in bookings recorded by the owner.
type Booking struct {
	ID          string    `db:"id"`
	HotelID     string    `db:"hotel_id"`
	RoomID      *string   `db:"room_id"`
	CustomerID  string    `db:"customer_id"`
	GuestName   *string   `db:"guest_name"`
	GuestPhone  *string   `db:"guest_phone"`
	CheckIn     time.Time `db:"check_in"`
	CheckOut    time.Time `db:"check_out"`
	Status      Status    `db:"status"`
	TotalAmount *float64  `db:"total_amount"`
	model.Metadata
}

// RangesOverlap reports whether two half-open [in, out) date ranges collide.
// A stay that checks out the day another checks in does not overlap.
func RangesOverlap(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// Blocks reports whether this booking makes the given range unavailable.
func (b *Booking) Blocks(checkIn, checkOut time.Time) bool {
	return b.Status.Active() && RangesOverlap(b.CheckIn, b.CheckOut, checkIn, checkOut)
}

// Nights is the number of nights between check-in and check-out.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// PriceFor computes the total for a stay at the given nightly rate,
// rounded to two decimal places.
func PriceFor(nights int, nightlyRate float64) float64 {
	return math.Round(float64(nights)*nightlyRate*100) / 100
}
