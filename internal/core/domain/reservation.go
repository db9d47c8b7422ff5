package domain

import (
	"errors"
	"time"
)

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// DefaultPartySize is applied when a reservation is created without one.
const DefaultPartySize = 1

var ErrReservationNotFound = errors.New("reservation not found")

// Reservation is a table booking made on behalf of a customer.
//
// Status has no transition graph: any legal value may replace any other.
type Reservation struct {
	ID              int64             `json:"id"               db:"id"               bson:"_id"`
	CustomerName    string            `json:"customer_name"    db:"customer_name"    bson:"customer_name"    validate:"required,max=200"`
	CustomerEmail   string            `json:"customer_email"   db:"customer_email"   bson:"customer_email"   validate:"required,max=254,email,tld"`
	CustomerPhone   string            `json:"customer_phone"   db:"customer_phone"   bson:"customer_phone"   validate:"max=20"`
	ReservationTime time.Time         `json:"reservation_time" db:"reservation_time" bson:"reservation_time" validate:"required"`
	PartySize       int               `json:"party_size"       db:"party_size"       bson:"party_size"       validate:"min=1,max=2147483647"`
	Status          ReservationStatus `json:"status"           db:"status"           bson:"status"           validate:"oneof=pending confirmed cancelled completed"`
	Notes           string            `json:"notes"            db:"notes"            bson:"notes"`
	CreatedAt       time.Time         `json:"created_at"       db:"created_at"       bson:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"       db:"updated_at"       bson:"updated_at"`
}
