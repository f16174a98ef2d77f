package folder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (a *Accessor) CreateFolder(ctx context.Context, f Folder, now time.Time) (*Folder, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	id := uuid.New()

	query := `INSERT INTO folders (id, name, user_id, is_archived, ord, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $6)`
	if _, err := a.db.ExecContext(ctx, query, id, f.Name, f.UserID, f.IsArchived, f.Order, now); err != nil {
		return nil, fmt.Errorf("exec context: %w", err)
	}

	f.ID = id
	f.CreatedAt = now
	f.UpdatedAt = now
	return &f, nil
}

func (a *Accessor) GetFolder(ctx context.Context, id uuid.UUID) (*Folder, error) {
	var f Folder

	query := `SELECT id, name, user_id, is_archived, ord, created_at, updated_at FROM folders WHERE id = $1`
	row := a.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&f.ID, &f.Name, &f.UserID, &f.IsArchived, &f.Order, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}

	return &f, nil
}

func (a *Accessor) GetFolders(ctx context.Context, ownerID uuid.UUID) ([]Folder, error) {
	var folders []Folder

	query := `SELECT id, name, user_id, is_archived, ord, created_at, updated_at FROM folders WHERE user_id = $1 ORDER BY ord, created_at`
	rows, err := a.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.UserID, &f.IsArchived, &f.Order, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		folders = append(folders, f)
	}

	return folders, rows.Err()
}

func (a *Accessor) RenameFolder(ctx context.Context, id uuid.UUID, name string, now time.Time) error {
	if name == "" {
		return errors.New("name is required")
	}

	query := `UPDATE folders SET name = $1, updated_at = $2 WHERE id = $3`
	if _, err := a.db.ExecContext(ctx, query, name, now, id); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

// ToggleArchive flips is_archived. Applying it twice restores the original
// value.
func (a *Accessor) ToggleArchive(ctx context.Context, id uuid.UUID, now time.Time) error {
	query := `UPDATE folders SET is_archived = NOT is_archived, updated_at = $1 WHERE id = $2`
	if _, err := a.db.ExecContext(ctx, query, now, id); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

// DeleteFolder moves every contained coach back to the root area, then
// removes the folder, in one transaction.
func (a *Accessor) DeleteFolder(ctx context.Context, id uuid.UUID, now time.Time) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE coaches SET folder_id = NULL, updated_at = $1 WHERE folder_id = $2`, now, id); err != nil {
		return fmt.Errorf("release coaches: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM folders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	return tx.Commit()
}
