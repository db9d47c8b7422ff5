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

const userColumns = `id, first_name, last_name, email, phone, user_type, active, address, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO users (first_name, last_name, email, phone, user_type, active, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		u.FirstName,
		u.LastName,
		u.Email,
		u.Phone,
		string(u.UserType),
		u.Active,
		u.Address,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, f ports.UserFilter) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, args := listUsersQuery(f)
	items := make([]*domain.User, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	return items, nil
}

func listUsersQuery(f ports.UserFilter) (string, []any) {
	var w where
	if f.UserType != "" {
		w.add("user_type", f.UserType)
	}
	if f.Active != nil {
		w.add("active", *f.Active)
	}
	return `SELECT ` + userColumns + ` FROM users` + w.String() +
		` ORDER BY created_at DESC, id DESC`, w.args
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, phone = $4, user_type = $5,
			active = $6, address = $7, updated_at = $8
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		u.FirstName,
		u.LastName,
		u.Email,
		u.Phone,
		string(u.UserType),
		u.Active,
		u.Address,
		u.UpdatedAt,
		u.ID,
	)
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return expectOneRow(result, domain.ErrUserNotFound)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return expectOneRow(result, domain.ErrUserNotFound)
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var taken bool
	err := r.db.GetContext(ctx, &taken,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`, email, excludeID)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return taken, nil
}
