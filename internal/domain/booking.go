package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusOngoing   BookingStatus = "ONGOING"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID            string        `json:"id"`
	ItemID        string        `json:"item_id"`
	RenterID      string        `json:"renter_id"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	ExtendedUntil *time.Time    `json:"extended_until,omitempty"`
	Status        BookingStatus `json:"status"`
	HandoverPhoto string        `json:"handover_photo,omitempty"`
	HandoverNotes string        `json:"handover_notes,omitempty"`
	ReturnPhoto   string        `json:"return_photo,omitempty"`
	ReturnNotes   string        `json:"return_notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// EffectiveEndDate is the agreed end of the rental, taking a granted
// extension into account.
func (b *Booking) EffectiveEndDate() time.Time {
	if b.ExtendedUntil != nil {
		return *b.ExtendedUntil
	}
	return b.EndDate
}

// AvailabilityWindow is an append-only (start, end) tuple per item. Windows
// are not checked for overlap against bookings or each other.
type AvailabilityWindow struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}
