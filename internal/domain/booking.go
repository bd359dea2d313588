package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "PENDING"
	StatusConfirmed  BookingStatus = "CONFIRMED"
	StatusInProgress BookingStatus = "IN_PROGRESS"
	StatusCompleted  BookingStatus = "COMPLETED"
	StatusCancelled  BookingStatus = "CANCELLED"
	StatusRefunded   BookingStatus = "REFUNDED"
)

// Booking represents a rental booking in the system.
// Item data (name, owner, nightly price) is denormalized at creation time:
// the total price stays frozen even if the catalog price changes later, and
// owner-side queries and authorization never need a catalog round-trip.
type Booking struct {
	ID     string
	ItemID string
	UserID string // booker

	StartDate  time.Time // inclusive
	EndDate    time.Time // inclusive
	RentalDays int

	TotalPrice    decimal.Decimal
	Status        BookingStatus
	PaymentStatus string // free-form, tracked separately from Status

	DeliveryAddress     *string
	SpecialInstructions *string

	// Denormalized item data
	ItemName    string
	ItemOwnerID string
	ItemPrice   decimal.Decimal // nightly price at creation time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking blocks the item's dates
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusRefunded
}

// OverlapsRange reports whether the booking's inclusive date range
// intersects [start, end]: start <= b.EndDate AND end >= b.StartDate
func (b *Booking) OverlapsRange(start, end time.Time) bool {
	return !start.After(b.EndDate) && !end.Before(b.StartDate)
}

// transitions is the allowed status graph. CANCELLED and REFUNDED are
// terminal, so a cancelled booking can never re-enter the conflict set.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusRefunded},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

// CanTransitionTo reports whether the status graph allows moving
// the booking from its current status to next
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is one of the known status values
func IsValidStatus(s BookingStatus) bool {
	_, ok := transitions[s]
	return ok
}
