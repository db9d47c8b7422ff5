package handler

import (
	"time"

	"github.com/booking-platform/services/internal/core/domain"
	"github.com/booking-platform/services/internal/core/ports"
)

// --- Request / Response types ---

// userRequest is the body of create, PUT and PATCH. full_name is derived and
// not accepted.
type userRequest struct {
	FirstName *string `json:"first_name" example:"Ana"`
	LastName  *string `json:"last_name"  example:"García"`
	Email     *string `json:"email"      example:"ana@example.com"`
	Phone     *string `json:"phone"      example:"+52 55 8765 4321"`
	UserType  *string `json:"user_type"  example:"customer" enums:"customer,administrator,employee"`
	Active    *bool   `json:"active"     example:"true"`
	Address   *string `json:"address"    example:"Av. Reforma 222, CDMX"`
}

type userResponse struct {
	ID        int64     `json:"id"         example:"1"`
	FirstName string    `json:"first_name" example:"Ana"`
	LastName  string    `json:"last_name"  example:"García"`
	FullName  string    `json:"full_name"  example:"Ana García"`
	Email     string    `json:"email"      example:"ana@example.com"`
	Phone     string    `json:"phone"      example:"+52 55 8765 4321"`
	UserType  string    `json:"user_type"  example:"customer"`
	Active    bool      `json:"active"     example:"true"`
	Address   string    `json:"address"    example:"Av. Reforma 222, CDMX"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r userRequest) toInput() ports.UserInput {
	return ports.UserInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		UserType:  r.UserType,
		Active:    r.Active,
		Address:   r.Address,
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Email:     u.Email,
		Phone:     u.Phone,
		UserType:  string(u.UserType),
		Active:    u.Active,
		Address:   u.Address,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func toUserResponses(items []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(items))
	for _, u := range items {
		out = append(out, toUserResponse(u))
	}
	return out
}
