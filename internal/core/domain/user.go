package domain

import (
	"errors"
	"time"
)

// UserType classifies what a user is allowed to do in the restaurant.
type UserType string

const (
	UserTypeCustomer      UserType = "customer"
	UserTypeAdministrator UserType = "administrator"
	UserTypeEmployee      UserType = "employee"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by stores when a write hits the unique
	// constraint on users.email.
	ErrEmailTaken = errors.New("email already in use")
)

// User models a registered person: customer, administrator or employee.
type User struct {
	ID        int64     `json:"id"         db:"id"         bson:"_id"`
	FirstName string    `json:"first_name" db:"first_name" bson:"first_name" validate:"required,max=200"`
	LastName  string    `json:"last_name"  db:"last_name"  bson:"last_name"  validate:"required,max=200"`
	Email     string    `json:"email"      db:"email"      bson:"email"      validate:"required,max=254,email,tld"`
	Phone     string    `json:"phone"      db:"phone"      bson:"phone"      validate:"max=20"`
	UserType  UserType  `json:"user_type"  db:"user_type"  bson:"user_type"  validate:"oneof=customer administrator employee"`
	Active    bool      `json:"active"     db:"active"     bson:"active"`
	Address   string    `json:"address"    db:"address"    bson:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" bson:"updated_at"`
}

// FullName is derived and never stored.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
