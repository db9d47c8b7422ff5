package handler

import (
	"time"

	"github.com/booking-platform/services/internal/core/domain"
	"github.com/booking-platform/services/internal/core/ports"
)

// reservationTimeLayouts are tried in order. Layouts without an offset are
// read as UTC.
var reservationTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

const msgInvalidReservationTime = "reservation_time must be a valid RFC 3339 datetime"

// --- Request / Response types ---

// reservationRequest is the body of create, PUT and PATCH. A nil field was
// absent from the JSON document.
type reservationRequest struct {
	CustomerName    *string `json:"customer_name"    example:"Juan Pérez"`
	CustomerEmail   *string `json:"customer_email"   example:"juan@example.com"`
	CustomerPhone   *string `json:"customer_phone"   example:"+52 55 1234 5678"`
	ReservationTime *string `json:"reservation_time" example:"2025-06-01T19:00:00Z"`
	PartySize       *int    `json:"party_size"       example:"4"`
	Status          *string `json:"status"           example:"pending" enums:"pending,confirmed,cancelled,completed"`
	Notes           *string `json:"notes"            example:"window table"`
}

type reservationResponse struct {
	ID              int64     `json:"id"               example:"1"`
	CustomerName    string    `json:"customer_name"    example:"Juan Pérez"`
	CustomerEmail   string    `json:"customer_email"   example:"juan@example.com"`
	CustomerPhone   string    `json:"customer_phone"   example:"+52 55 1234 5678"`
	ReservationTime time.Time `json:"reservation_time" example:"2025-06-01T19:00:00Z"`
	PartySize       int       `json:"party_size"       example:"4"`
	Status          string    `json:"status"           example:"pending"`
	Notes           string    `json:"notes"            example:"window table"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// toInput converts the request into the service DTO. An unparseable
// reservation_time is reported as a field validation error.
func (r reservationRequest) toInput() (ports.ReservationInput, error) {
	in := ports.ReservationInput{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		PartySize:     r.PartySize,
		Status:        r.Status,
		Notes:         r.Notes,
	}

	if r.ReservationTime != nil {
		t, ok := parseReservationTime(*r.ReservationTime)
		if !ok {
			ve := domain.NewValidationError()
			ve.Add("reservation_time", msgInvalidReservationTime)
			return ports.ReservationInput{}, ve
		}
		in.ReservationTime = &t
	}
	return in, nil
}

// parseReservationTime returns the zero time for an empty string so the
// required rule reports it.
func parseReservationTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	for _, layout := range reservationTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func toReservationResponse(r *domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:              r.ID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		ReservationTime: r.ReservationTime.UTC(),
		PartySize:       r.PartySize,
		Status:          string(r.Status),
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
}

func toReservationResponses(items []*domain.Reservation) []reservationResponse {
	out := make([]reservationResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toReservationResponse(r))
	}
	return out
}
