package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/booking-platform/services/internal/core/domain"
	"github.com/booking-platform/services/internal/core/ports"
	"github.com/booking-platform/services/internal/infrastructure/db/memory"
)

// racyUserRepo hides existing emails from EmailTaken, as if another request
// inserted the same email between the check and the write.
type racyUserRepo struct {
	*memory.UserRepository
}

func (racyUserRepo) EmailTaken(context.Context, string, int64) (bool, error) { return false, nil }

func newUserService(t *testing.T) *UserService {
	t.Helper()
	svc := NewUserService(memory.NewUserRepository(), nil, discardLogger)
	svc.now = fixedClock(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	return svc
}

func userInput(first, last, email string) ports.UserInput {
	return ports.UserInput{FirstName: ptr(first), LastName: ptr(last), Email: ptr(email)}
}

func mustCreateUser(t *testing.T, svc *UserService, in ports.UserInput) *domain.User {
	t.Helper()
	u, _, err := svc.Create(context.Background(), in, "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestUserService_Create_Defaults(t *testing.T) {
	svc := newUserService(t)

	u := mustCreateUser(t, svc, userInput("Ana", "García", "ana@example.com"))

	if u.UserType != domain.UserTypeCustomer {
		t.Errorf("expected default user type customer, got %s", u.UserType)
	}
	if !u.Active {
		t.Error("new users must be active by default")
	}
	if u.FullName() != "Ana García" {
		t.Errorf("unexpected full name %q", u.FullName())
	}
}

func TestUserService_Create_DuplicateEmailRejected(t *testing.T) {
	svc := newUserService(t)
	mustCreateUser(t, svc, userInput("Ana", "García", "ana@example.com"))

	_, _, err := svc.Create(context.Background(), userInput("Otra", "Ana", "ana@example.com"), "")
	requireFieldError(t, err, "email")

	var ve *domain.ValidationError
	errors.As(err, &ve)
	if ve.Fields["email"][0] != msgEmailTaken {
		t.Errorf("unexpected message %q", ve.Fields["email"][0])
	}
}

func TestUserService_Create_DifferentEmailAccepted(t *testing.T) {
	svc := newUserService(t)
	first := mustCreateUser(t, svc, userInput("Ana", "García", "ana@example.com"))
	second := mustCreateUser(t, svc, userInput("Luis", "Soto", "luis@example.com"))

	if first.ID == second.ID {
		t.Error("ids must differ")
	}
}

func TestUserService_Create_UniqueViolationFromStoreIsValidationError(t *testing.T) {
	repo := racyUserRepo{memory.NewUserRepository()}
	svc := NewUserService(repo, nil, discardLogger)
	mustCreateUser(t, svc, userInput("Ana", "García", "ana@example.com"))

	_, _, err := svc.Create(context.Background(), userInput("Ana", "Bis", "ana@example.com"), "")
	requireFieldError(t, err, "email")
}

func TestUserService_Create_FieldRules(t *testing.T) {
	tests := []struct {
		name  string
		in    ports.UserInput
		field string
	}{
		{"missing first name", ports.UserInput{LastName: ptr("G"), Email: ptr("a@example.com")}, "first_name"},
		{"missing last name", ports.UserInput{FirstName: ptr("A"), Email: ptr("a@example.com")}, "last_name"},
		{"missing email", ports.UserInput{FirstName: ptr("A"), LastName: ptr("G")}, "email"},
		{"malformed email", userInput("A", "G", "not-an-email"), "email"},
		{"unknown user type", func() ports.UserInput {
			in := userInput("A", "G", "a@example.com")
			in.UserType = ptr("cliente")
			return in
		}(), "user_type"},
		{"phone too long", func() ports.UserInput {
			in := userInput("A", "G", "a@example.com")
			in.Phone = ptr("123456789012345678901")
			return in
		}(), "phone"},
		{"email too long", userInput("A", "G", strings.Repeat("a", 243)+"@example.com"), "email"},
		{"one letter tld", userInput("A", "G", "x@y.c"), "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newUserService(t)
			_, _, err := svc.Create(context.Background(), tt.in, "")
			requireFieldError(t, err, tt.field)
		})
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestUserService_Update_EmailOwnedByOtherUserRejected(t *testing.T) {
	svc := newUserService(t)
	mustCreateUser(t, svc, userInput("Ana", "García", "ana@example.com"))
	luis := mustCreateUser(t, svc, userInput("Luis", "Soto", "luis@example.com"))

	_, err := svc.Update(context.Background(), luis.ID, ports.UserInput{Email: ptr("ana@example.com")}, true)
	requireFieldError(t, err, "email")
}

func TestUserService_Update_OwnEmailAccepted(t *testing.T) {
	svc := newUserService(t)
	ana := mustCreateUser(t, svc, userInput("Ana", "García", "ana@example.com"))

	updated, err := svc.Update(context.Background(), ana.ID, userInput("Ana María", "García", "ana@example.com"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FullName() != "Ana María García" {
		t.Errorf("unexpected full name %q", updated.FullName())
	}
	if !updated.UpdatedAt.After(ana.UpdatedAt) {
		t.Error("updated_at must advance")
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Update(context.Background(), 42, ports.UserInput{}, true)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Actions / List
// ---------------------------------------------------------------------------

func TestUserService_Deactivate_RemovesFromActiveList(t *testing.T) {
	svc := newUserService(t)
	ana := mustCreateUser(t, svc, userInput("Ana", "García", "ana@example.com"))
	luis := mustCreateUser(t, svc, userInput("Luis", "Soto", "luis@example.com"))

	u, err := svc.Deactivate(context.Background(), ana.ID)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if u.Active {
		t.Error("expected active=false")
	}

	active, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != luis.ID {
		t.Fatalf("expected only luis to be active, got %+v", active)
	}

	if _, err := svc.Activate(context.Background(), ana.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	active, _ = svc.ListActive(context.Background())
	if len(active) != 2 {
		t.Errorf("expected 2 active users after re-activation, got %d", len(active))
	}
}

func TestUserService_Deactivate_NotFound(t *testing.T) {
	svc := newUserService(t)

	if _, err := svc.Deactivate(context.Background(), 3); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_List_Filters(t *testing.T) {
	svc := newUserService(t)
	admin := userInput("Root", "Admin", "root@example.com")
	admin.UserType = ptr("administrator")
	mustCreateUser(t, svc, admin)
	mustCreateUser(t, svc, userInput("Ana", "García", "ana@example.com"))
	luis := mustCreateUser(t, svc, userInput("Luis", "Soto", "luis@example.com"))
	if _, err := svc.Deactivate(context.Background(), luis.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	inactive := false
	tests := []struct {
		name   string
		filter ports.UserFilter
		want   int
	}{
		{"no filter", ports.UserFilter{}, 3},
		{"customers", ports.UserFilter{UserType: "customer"}, 2},
		{"administrators", ports.UserFilter{UserType: "administrator"}, 1},
		{"unknown type", ports.UserFilter{UserType: "cliente"}, 0},
		{"inactive", ports.UserFilter{Active: &inactive}, 1},
		{"inactive customers", ports.UserFilter{UserType: "customer", Active: &inactive}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d users, got %d", tt.want, len(got))
			}
		})
	}
}

func TestUserService_List_NewestFirst(t *testing.T) {
	svc := newUserService(t)
	mustCreateUser(t, svc, userInput("A", "A", "a@example.com"))
	mustCreateUser(t, svc, userInput("B", "B", "b@example.com"))
	last := mustCreateUser(t, svc, userInput("C", "C", "c@example.com"))

	items, _ := svc.List(context.Background(), ports.UserFilter{})
	if items[0].ID != last.ID {
		t.Errorf("expected most recently created user first, got id %d", items[0].ID)
	}
}
