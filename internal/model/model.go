package model

import (
	"math"
	"time"
)

type EventStatus string

const (
	EventUpcoming  EventStatus = "UPCOMING"
	EventOngoing   EventStatus = "ONGOING"
	EventCompleted EventStatus = "COMPLETED"
)

type Event struct {
	ID                    int64     `db:"id" json:"id"`
	Name                  string    `db:"name" json:"name"`
	Description           string    `db:"description,omitempty" json:"description,omitempty"`
	StartTime             time.Time `db:"start_time" json:"start_time"`
	EndTime               time.Time `db:"end_time,omitempty" json:"end_time,omitempty"`
	Location              string    `db:"location,omitempty" json:"location,omitempty"`
	Capacity              int       `db:"capacity" json:"capacity"`
	PriceCents            int64     `db:"price_cents" json:"price_cents"`
	PaymentTimeoutMinutes int       `db:"payment_timeout_minutes" json:"payment_timeout_minutes"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

// Status derives the lifecycle phase from the event window; it is never stored.
func (e *Event) Status(now time.Time) EventStatus {
	if now.Before(e.StartTime) {
		return EventUpcoming
	}
	if !e.EndTime.IsZero() && now.After(e.EndTime) {
		return EventCompleted
	}
	return EventOngoing
}

type Role string

const (
	RoleAttendee   Role = "ATTENDEE"
	RoleEventAdmin Role = "EVENT_ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// CanScan reports whether the role is allowed to operate the venue scanner.
func (r Role) CanScan() bool {
	return r == RoleEventAdmin || r == RoleSuperAdmin
}

type User struct {
	ID        int64     `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email,omitempty" json:"email,omitempty"`
	Phone     string    `db:"phone,omitempty" json:"phone,omitempty"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingFailed    BookingStatus = "FAILED"
)

// Booking moves PENDING -> CONFIRMED -> scanned in one direction only;
// FAILED is terminal from PENDING. ScannedAt is set at most once.
type Booking struct {
	ID             int64         `db:"id" json:"id"`
	EventID        int64         `db:"event_id" json:"event_id"`
	UserID         int64         `db:"user_id" json:"user_id"`
	Tickets        int           `db:"tickets" json:"tickets"`
	TotalCents     int64         `db:"total_cents" json:"total_cents"`
	Status         BookingStatus `db:"status" json:"status"`
	GatewayOrderID string        `db:"gateway_order_id" json:"gateway_order_id"`
	PaymentID      string        `db:"payment_id,omitempty" json:"payment_id,omitempty"`
	FailureReason  string        `db:"failure_reason,omitempty" json:"failure_reason,omitempty"`
	ScannedAt      *time.Time    `db:"scanned_at,omitempty" json:"scanned_at,omitempty"`
	ScannedBy      *int64        `db:"scanned_by,omitempty" json:"scanned_by,omitempty"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}

func (b *Booking) Scanned() bool {
	return b.ScannedAt != nil
}

// EventStats is the operator dashboard aggregate for a single event.
// TotalTickets counts PENDING and CONFIRMED bookings, matching the
// capacity guard, so AvailableTickets never promises held inventory.
type EventStats struct {
	TotalBookings     int `json:"total_bookings"`
	TotalTickets      int `json:"total_tickets"`
	ConfirmedBookings int `json:"confirmed_bookings"`
	AvailableTickets  int `json:"available_tickets"`
}

// ToCents converts a decimal currency amount to the gateway's minor units.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents is the inverse of ToCents for response payloads.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}
