package apikey

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SetKey upserts the key for a service. Service names are stored lowercase.
func (a *Accessor) SetKey(ctx context.Context, service, key string, updatedBy uuid.UUID, now time.Time) error {
	if service == "" || key == "" {
		return errors.New("service and key are required")
	}

	query := `INSERT INTO api_keys (service, key, updated_by, updated_at) VALUES ($1, $2, $3, $4) ON CONFLICT (service) DO UPDATE SET key = $2, updated_by = $3, updated_at = $4`
	if _, err := a.db.ExecContext(ctx, query, strings.ToLower(service), key, updatedBy, now); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (a *Accessor) GetKey(ctx context.Context, service string) (string, error) {
	var key string

	query := `SELECT key FROM api_keys WHERE service = $1`
	row := a.db.QueryRowContext(ctx, query, strings.ToLower(service))
	if err := row.Scan(&key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("scan: %w", err)
	}

	return key, nil
}

func (a *Accessor) RemoveKey(ctx context.Context, service string) error {
	query := `DELETE FROM api_keys WHERE service = $1`
	if _, err := a.db.ExecContext(ctx, query, strings.ToLower(service)); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}
