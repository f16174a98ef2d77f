package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (a *Accessor) CreateUser(ctx context.Context, u User, now time.Time) (*User, error) {
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	if u.PasswordHash == "" {
		return nil, errors.New("password hash is required")
	}

	id := uuid.New()

	query := `INSERT INTO users (id, email, password_hash, first_name, last_name, role, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	if _, err := a.db.ExecContext(ctx, query, id, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, now); err != nil {
		return nil, fmt.Errorf("exec context: %w", err)
	}

	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return &u, nil
}

func (a *Accessor) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User

	query := `SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at FROM users WHERE id = $1`
	row := a.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}

	return &u, nil
}

func (a *Accessor) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User

	query := `SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at FROM users WHERE email = $1`
	row := a.db.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}

	return &u, nil
}

// GetUsers returns every user together with the number of coaches they own.
func (a *Accessor) GetUsers(ctx context.Context) ([]User, error) {
	var users []User

	query := `SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.created_at, u.updated_at, COUNT(c.id) FROM users u LEFT JOIN coaches c ON c.user_id = u.id GROUP BY u.id ORDER BY u.created_at`
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.CoachCount); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (a *Accessor) SetRole(ctx context.Context, id uuid.UUID, role Role, now time.Time) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}

	query := `UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`
	if _, err := a.db.ExecContext(ctx, query, role, now, id); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

// DeleteUser removes the user row. Their coaches and the meetings under those
// coaches are removed by the schema's ON DELETE CASCADE rules, but the coach
// delete is issued explicitly so the whole thing rides in one transaction and
// the row counts stay observable.
func (a *Accessor) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM coaches WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("delete coaches: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return tx.Commit()
}
