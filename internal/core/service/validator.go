package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/booking-platform/services/internal/core/domain"
)

var validate = newValidator()

// newValidator reports field errors under their JSON names so the messages
// line up with the request body the client sent.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("tld", hasTopLevelDomain)
	return v
}

// hasTopLevelDomain rejects addresses like x@y.c that the email rule lets
// through: the last label of the domain must be at least two characters.
func hasTopLevelDomain(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return false
	}
	host := s[at+1:]
	if host == "localhost" || strings.HasPrefix(host, "[") {
		return true
	}
	dot := strings.LastIndexByte(host, '.')
	return dot >= 0 && len(host)-dot-1 >= 2
}

// checkStruct runs the struct's validate tags and records each failure in ve.
// Only non-validation failures (e.g. a bad tag) are returned.
func checkStruct(s any, ve *domain.ValidationError) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return err
	}
	for _, fe := range fes {
		ve.Add(fe.Field(), fieldError(fe))
	}
	return nil
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email", "tld":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// ValidateReservation checks a fully merged reservation.
func ValidateReservation(r *domain.Reservation) error {
	ve := domain.NewValidationError()
	if err := checkStruct(r, ve); err != nil {
		return err
	}
	return ve.OrNil()
}

// ValidateUser checks a fully merged user. emailTaken is consulted only when
// the email is syntactically valid; it must exclude the user's own record.
func ValidateUser(u *domain.User, emailTaken func(email string) (bool, error)) error {
	ve := domain.NewValidationError()
	if err := checkStruct(u, ve); err != nil {
		return err
	}
	if !ve.Has("email") && emailTaken != nil {
		taken, err := emailTaken(u.Email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if taken {
			ve.Add("email", msgEmailTaken)
		}
	}
	return ve.OrNil()
}

const msgEmailTaken = "a user with this email already exists"
