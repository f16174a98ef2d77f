package coach

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const columns = `id, user_id, folder_id, company_name, id_number, website, main_activity, sub_activities, facebook_url, instagram_url, linkedin_url, last_google_review, employee_count, site_count, decision_maker, client_address, client_email, coordinates, is_archived, created_at, updated_at`

func scanCoach(row interface{ Scan(...any) error }) (*Coach, error) {
	var c Coach
	var coords CoordinatesColumn
	err := row.Scan(
		&c.ID, &c.UserID, &c.FolderID, &c.CompanyName, &c.IDNumber, &c.Website,
		&c.MainActivity, &c.SubActivities, &c.FacebookURL, &c.InstagramURL,
		&c.LinkedinURL, &c.LastGoogleReview, &c.EmployeeCount, &c.SiteCount,
		&c.DecisionMaker, &c.ClientAddress, &c.ClientEmail, &coords,
		&c.IsArchived, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Coordinates = coords.Coordinates
	return &c, nil
}

func (a *Accessor) CreateCoach(ctx context.Context, c Coach, now time.Time) (*Coach, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	id := uuid.New()

	query := `INSERT INTO coaches (` + columns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $20)`
	if _, err := a.db.ExecContext(ctx, query,
		id, c.UserID, c.FolderID, c.CompanyName, c.IDNumber, c.Website,
		c.MainActivity, c.SubActivities, c.FacebookURL, c.InstagramURL,
		c.LinkedinURL, c.LastGoogleReview, c.EmployeeCount, c.SiteCount,
		c.DecisionMaker, c.ClientAddress, c.ClientEmail,
		CoordinatesColumn{c.Coordinates}, c.IsArchived, now,
	); err != nil {
		return nil, fmt.Errorf("exec context: %w", err)
	}

	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return &c, nil
}

func (a *Accessor) GetCoach(ctx context.Context, id uuid.UUID) (*Coach, error) {
	query := `SELECT ` + columns + ` FROM coaches WHERE id = $1`
	c, err := scanCoach(a.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}
	return c, nil
}

func (a *Accessor) GetCoaches(ctx context.Context, ownerID uuid.UUID) ([]Coach, error) {
	query := `SELECT ` + columns + ` FROM coaches WHERE user_id = $1 ORDER BY created_at`
	rows, err := a.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var coaches []Coach
	for rows.Next() {
		c, err := scanCoach(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		coaches = append(coaches, *c)
	}
	return coaches, rows.Err()
}

// GetCoachIDs returns the IDs of every coach owned by ownerID. The meeting
// package uses this set to collect the owner's whole schedule.
func (a *Accessor) GetCoachIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT id FROM coaches WHERE user_id = $1`
	rows, err := a.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (a *Accessor) UpdateCoach(ctx context.Context, c Coach, now time.Time) (*Coach, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	// user_id, folder_id and created_at are not touched here; moves go
	// through MoveCoach.
	query := `UPDATE coaches SET company_name = $1, id_number = $2, website = $3, main_activity = $4, sub_activities = $5, facebook_url = $6, instagram_url = $7, linkedin_url = $8, last_google_review = $9, employee_count = $10, site_count = $11, decision_maker = $12, client_address = $13, client_email = $14, coordinates = $15, updated_at = $16 WHERE id = $17`
	if _, err := a.db.ExecContext(ctx, query,
		c.CompanyName, c.IDNumber, c.Website, c.MainActivity, c.SubActivities,
		c.FacebookURL, c.InstagramURL, c.LinkedinURL, c.LastGoogleReview,
		c.EmployeeCount, c.SiteCount, c.DecisionMaker, c.ClientAddress,
		c.ClientEmail, CoordinatesColumn{c.Coordinates}, now, c.ID,
	); err != nil {
		return nil, fmt.Errorf("exec context: %w", err)
	}

	updated, err := a.GetCoach(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("get coach: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("coach not found after update")
	}
	return updated, nil
}

// MoveCoach reassigns the coach's folder, folderID == nil meaning the root
// area. The write is unconditional: moving a coach to the folder it is
// already in still bumps updated_at. Last write wins.
func (a *Accessor) MoveCoach(ctx context.Context, id uuid.UUID, folderID *uuid.UUID, now time.Time) error {
	query := `UPDATE coaches SET folder_id = $1, updated_at = $2 WHERE id = $3`
	if _, err := a.db.ExecContext(ctx, query, folderID, now, id); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (a *Accessor) SetArchived(ctx context.Context, id uuid.UUID, archived bool, now time.Time) error {
	query := `UPDATE coaches SET is_archived = $1, updated_at = $2 WHERE id = $3`
	if _, err := a.db.ExecContext(ctx, query, archived, now, id); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}

func (a *Accessor) DeleteCoach(ctx context.Context, id uuid.UUID) error {
	// meetings under the coach go with it (ON DELETE CASCADE)
	query := `DELETE FROM coaches WHERE id = $1`
	if _, err := a.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}
