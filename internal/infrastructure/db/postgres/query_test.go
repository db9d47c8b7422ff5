package postgres

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/lib/pq"

	"github.com/booking-platform/services/internal/core/ports"
)

func TestListReservationsQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    ports.ReservationFilter
		wantWhere string
		wantArgs  []any
	}{
		{"no filter", ports.ReservationFilter{}, "", nil},
		{"status", ports.ReservationFilter{Status: "pending"}, " WHERE status = $1", []any{"pending"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := listReservationsQuery(tt.filter)

			want := "FROM reservations" + tt.wantWhere + " ORDER BY reservation_time DESC, id DESC"
			if !strings.HasSuffix(query, want) {
				t.Errorf("query %q does not end with %q", query, want)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("expected args %v, got %v", tt.wantArgs, args)
			}
		})
	}
}

func TestListUsersQuery(t *testing.T) {
	active := false
	query, args := listUsersQuery(ports.UserFilter{UserType: "employee", Active: &active})

	want := "FROM users WHERE user_type = $1 AND active = $2 ORDER BY created_at DESC, id DESC"
	if !strings.HasSuffix(query, want) {
		t.Errorf("query %q does not end with %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{"employee", false}) {
		t.Errorf("unexpected args %v", args)
	}
}

func TestListUsersQuery_NoFilter(t *testing.T) {
	query, args := listUsersQuery(ports.UserFilter{})

	if strings.Contains(query, "WHERE") {
		t.Errorf("unexpected WHERE in %q", query)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pq.Error{Code: "23505", Constraint: "users_email_key"}
	if !isUniqueViolation(fmt.Errorf("insert: %w", unique)) {
		t.Error("wrapped 23505 should be a unique violation")
	}
	if isUniqueViolation(&pq.Error{Code: "23514"}) {
		t.Error("check violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("boom")) || isUniqueViolation(nil) {
		t.Error("plain errors are not unique violations")
	}
}

func TestSchemaFilesEmbedded(t *testing.T) {
	for _, name := range []string{SchemaReservations, SchemaUsers} {
		ddl, err := schemaFS.ReadFile("schema/" + name + ".sql")
		if err != nil {
			t.Fatalf("schema %s: %v", name, err)
		}
		if !strings.Contains(string(ddl), "CREATE TABLE IF NOT EXISTS "+name) {
			t.Errorf("schema %s does not create its table", name)
		}
	}
}
