package user

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, username, email, password, role, age, phone, address, city, postal_code`

func (r *repository) Create(ctx context.Context, u *User) error {
	log := logger.FromCtx(ctx)

	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (username, email, password, role, age) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		u.Username, u.Email, u.Password, u.Role, u.Age,
	).Scan(&u.ID)
	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("username", u.Username),
			zap.Error(err),
		)
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (r *repository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username)
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))", email)
}

func (r *repository) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var (
		u                                User
		phone, address, city, postalCode sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.Age,
		&phone, &address, &city, &postalCode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	u.Phone = nullable(phone)
	u.Address = nullable(address)
	u.City = nullable(city)
	u.PostalCode = nullable(postalCode)
	return &u, nil
}

func (r *repository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&ok)
	return ok, err
}

// mapUniqueViolation turns a race on the unique indexes into the same
// sentinel the pre-check returns.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return err
	}
	switch pqErr.Constraint {
	case "users_username_key":
		return ErrUsernameExists
	case "users_email_key":
		return ErrEmailExists
	}
	return err
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
