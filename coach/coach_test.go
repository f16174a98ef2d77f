package coach_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-coach/coach"
)

const columns = `id, user_id, folder_id, company_name, id_number, website, main_activity, sub_activities, facebook_url, instagram_url, linkedin_url, last_google_review, employee_count, site_count, decision_maker, client_address, client_email, coordinates, is_archived, created_at, updated_at`

func coachColumns() []string {
	return []string{"id", "user_id", "folder_id", "company_name", "id_number", "website", "main_activity", "sub_activities", "facebook_url", "instagram_url", "linkedin_url", "last_google_review", "employee_count", "site_count", "decision_maker", "client_address", "client_email", "coordinates", "is_archived", "created_at", "updated_at"}
}

func coachRow(c coach.Coach, now time.Time) []driver.Value {
	var coords driver.Value
	if c.Coordinates != nil {
		coords, _ = coach.CoordinatesColumn{Coordinates: c.Coordinates}.Value()
	}
	return []driver.Value{
		c.ID, c.UserID, c.FolderID, c.CompanyName, c.IDNumber, c.Website,
		c.MainActivity, c.SubActivities, c.FacebookURL, c.InstagramURL,
		c.LinkedinURL, c.LastGoogleReview, c.EmployeeCount, c.SiteCount,
		c.DecisionMaker, c.ClientAddress, c.ClientEmail, coords,
		c.IsArchived, now, now,
	}
}

func TestCoach(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := coach.NewAccessor(db)

	coachID := uuid.New()
	ownerID := uuid.New()
	now := time.Now()

	sample := coach.Coach{
		ID:            coachID,
		UserID:        ownerID,
		CompanyName:   "Acme Bakery",
		MainActivity:  "bakery",
		EmployeeCount: 12,
		SiteCount:     2,
		ClientEmail:   "owner@acme.test",
		Coordinates:   &coach.Coordinates{Lat: "48.85", Lon: "2.35"},
	}

	t.Run("create coach", func(t *testing.T) {
		insertQuery := `INSERT INTO coaches (` + columns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $20)`
		dbMock.ExpectExec(regexp.QuoteMeta(insertQuery)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		created, err := a.CreateCoach(context.Background(), sample, now)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, sample.CompanyName, created.CompanyName)
		assert.Equal(t, now, created.CreatedAt)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("create coach without company name", func(t *testing.T) {
		invalid := sample
		invalid.CompanyName = ""
		_, err := a.CreateCoach(context.Background(), invalid, now)
		require.Error(t, err)
	})

	t.Run("get coach", func(t *testing.T) {
		selectQuery := `SELECT ` + columns + ` FROM coaches WHERE id = $1`
		dbMock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
			WithArgs(coachID).
			WillReturnRows(sqlmock.NewRows(coachColumns()).AddRow(coachRow(sample, now)...))

		c, err := a.GetCoach(context.Background(), coachID)
		require.NoError(t, err)
		assert.Equal(t, coachID, c.ID)
		assert.Equal(t, sample.CompanyName, c.CompanyName)
		require.NotNil(t, c.Coordinates)
		assert.Equal(t, "48.85", c.Coordinates.Lat)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("get coach - no rows", func(t *testing.T) {
		missing := uuid.New()
		selectQuery := `SELECT ` + columns + ` FROM coaches WHERE id = $1`
		dbMock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
			WithArgs(missing).
			WillReturnError(sql.ErrNoRows)

		c, err := a.GetCoach(context.Background(), missing)
		require.NoError(t, err)
		require.Nil(t, c)
	})

	t.Run("move to folder then to root", func(t *testing.T) {
		moveQuery := `UPDATE coaches SET folder_id = $1, updated_at = $2 WHERE id = $3`
		folderID := uuid.New()

		// order of writes is observable: last write wins
		dbMock.ExpectExec(regexp.QuoteMeta(moveQuery)).
			WithArgs(nil, now, coachID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectExec(regexp.QuoteMeta(moveQuery)).
			WithArgs(&folderID, now, coachID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, a.MoveCoach(context.Background(), coachID, nil, now))
		require.NoError(t, a.MoveCoach(context.Background(), coachID, &folderID, now))

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("move to current folder still writes", func(t *testing.T) {
		moveQuery := `UPDATE coaches SET folder_id = $1, updated_at = $2 WHERE id = $3`
		folderID := uuid.New()

		dbMock.ExpectExec(regexp.QuoteMeta(moveQuery)).
			WithArgs(&folderID, now, coachID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectExec(regexp.QuoteMeta(moveQuery)).
			WithArgs(&folderID, now, coachID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, a.MoveCoach(context.Background(), coachID, &folderID, now))
		require.NoError(t, a.MoveCoach(context.Background(), coachID, &folderID, now))

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("set archived", func(t *testing.T) {
		archiveQuery := `UPDATE coaches SET is_archived = $1, updated_at = $2 WHERE id = $3`
		dbMock.ExpectExec(regexp.QuoteMeta(archiveQuery)).
			WithArgs(true, now, coachID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, a.SetArchived(context.Background(), coachID, true, now))
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("delete coach", func(t *testing.T) {
		deleteQuery := `DELETE FROM coaches WHERE id = $1`
		dbMock.ExpectExec(regexp.QuoteMeta(deleteQuery)).
			WithArgs(coachID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, a.DeleteCoach(context.Background(), coachID))
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("get coach ids", func(t *testing.T) {
		idsQuery := `SELECT id FROM coaches WHERE user_id = $1`
		other := uuid.New()
		dbMock.ExpectQuery(regexp.QuoteMeta(idsQuery)).
			WithArgs(ownerID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(coachID).AddRow(other))

		ids, err := a.GetCoachIDs(context.Background(), ownerID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{coachID, other}, ids)
	})
}
