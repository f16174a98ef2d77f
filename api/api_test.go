package api_test

import (
	"database/sql/driver"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"content-coach/api"
	"content-coach/auth"
	"content-coach/user"
)

const testSecret = "test-secret"

func setupAPI(t *testing.T) (*api.API, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := api.NewAPI(db, testSecret, nil)
	a.RegisterRoutes()
	return a, dbMock
}

func authorize(t *testing.T, req *http.Request, userID uuid.UUID, role user.Role) {
	t.Helper()
	tok, err := auth.MakeToken(auth.Session{UserID: userID, Email: "caller@example.test", Role: role}, testSecret)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)
}

// coachColumns matches the coach dao's select list.
func coachColumns() []string {
	return []string{"id", "user_id", "folder_id", "company_name", "id_number", "website", "main_activity", "sub_activities", "facebook_url", "instagram_url", "linkedin_url", "last_google_review", "employee_count", "site_count", "decision_maker", "client_address", "client_email", "coordinates", "is_archived", "created_at", "updated_at"}
}

func coachRow(coachID, ownerID uuid.UUID, now time.Time) []driver.Value {
	return []driver.Value{coachID, ownerID, nil, "Acme Bakery", "", "", "", "", "", "", "", "", 0, 0, "", "", "", nil, false, now, now}
}
