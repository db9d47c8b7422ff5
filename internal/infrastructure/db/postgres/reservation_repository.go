package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/booking-platform/services/internal/core/domain"
	"github.com/booking-platform/services/internal/core/ports"
)

const reservationColumns = `id, customer_name, customer_email, customer_phone, reservation_time,
	party_size, status, notes, created_at, updated_at`

type ReservationRepository struct {
	db *sqlx.DB
}

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create inserts a reservation and sets its generated id.
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO reservations (customer_name, customer_email, customer_phone, reservation_time,
			party_size, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		res.CustomerName,
		res.CustomerEmail,
		res.CustomerPhone,
		res.ReservationTime,
		res.PartySize,
		string(res.Status),
		res.Notes,
		res.CreatedAt,
		res.UpdatedAt,
	).Scan(&res.ID)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var res domain.Reservation
	err := r.db.GetContext(ctx, &res, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select reservation: %w", err)
	}
	return &res, nil
}

func (r *ReservationRepository) List(ctx context.Context, f ports.ReservationFilter) ([]*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, args := listReservationsQuery(f)
	items := make([]*domain.Reservation, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("select reservations: %w", err)
	}
	return items, nil
}

func listReservationsQuery(f ports.ReservationFilter) (string, []any) {
	var w where
	if f.Status != "" {
		w.add("status", f.Status)
	}
	return `SELECT ` + reservationColumns + ` FROM reservations` + w.String() +
		` ORDER BY reservation_time DESC, id DESC`, w.args
}

func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		UPDATE reservations
		SET customer_name = $1, customer_email = $2, customer_phone = $3, reservation_time = $4,
			party_size = $5, status = $6, notes = $7, updated_at = $8
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		res.CustomerName,
		res.CustomerEmail,
		res.CustomerPhone,
		res.ReservationTime,
		res.PartySize,
		string(res.Status),
		res.Notes,
		res.UpdatedAt,
		res.ID,
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	return expectOneRow(result, domain.ErrReservationNotFound)
}

func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	return expectOneRow(result, domain.ErrReservationNotFound)
}

// expectOneRow turns a zero RowsAffected into notFound.
func expectOneRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
