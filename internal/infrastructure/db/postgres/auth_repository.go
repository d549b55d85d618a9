package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/elexus/guest-registry/internal/core/domain"
)

// AuthRepository persists staff accounts.
type AuthRepository struct {
	db *sql.DB
}

func NewAuthRepository(db *sql.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

const accountColumns = `id, username, password_hash, full_name, role, created_at, last_login`

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`select `+accountColumns+` from accounts where username = $1`, username)
	return scanAccount(row)
}

func (r *AuthRepository) FindByID(ctx context.Context, id int) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`select `+accountColumns+` from accounts where id = $1`, id)
	return scanAccount(row)
}

func (r *AuthRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		insert into accounts (username, password_hash, full_name, role)
		values ($1, $2, $3, $4)
		returning id, created_at
	`, account.Username, account.PasswordHash, account.FullName, account.Role)

	created := *account
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return &created, nil
}

func (r *AuthRepository) TouchLastLogin(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`update accounts set last_login = now() where id = $1`, id)
	return err
}

func scanAccount(row *sql.Row) (*domain.Account, error) {
	var (
		a         domain.Account
		lastLogin sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.FullName, &a.Role, &a.CreatedAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	if lastLogin.Valid {
		t := lastLogin.Time.UTC()
		a.LastLogin = &t
	}
	return &a, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	type sqlStater interface{ SQLState() string }
	var st sqlStater
	if errors.As(err, &st) {
		return st.SQLState() == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}
