package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-coach/api"
)

func TestAdminAPI(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	now := time.Now()

	t.Run("create user as admin", func(t *testing.T) {
		t.Parallel()
		a, dbMock := setupAPI(t)

		dbMock.ExpectExec("INSERT INTO users").
			WillReturnResult(sqlmock.NewResult(1, 1))

		body := `{"email":"casey@example.test","password":"s3cret-pass","firstName":"Casey","lastName":"Moreau"}`
		req := httptest.NewRequest(http.MethodPost, "/api/admin/users", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		authorize(t, req, adminID, "admin")
		rec := httptest.NewRecorder()

		a.Router().ServeHTTP(rec, req)

		require.NoError(t, dbMock.ExpectationsWereMet())
		assert.Equal(t, http.StatusCreated, rec.Code)

		var res api.Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		u, ok := res.Response.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "casey@example.test", u["email"])
		assert.Equal(t, "user", u["role"])
	})

	t.Run("create user forbidden for plain user", func(t *testing.T) {
		t.Parallel()
		a, _ := setupAPI(t)

		body := `{"email":"casey@example.test","password":"s3cret-pass","firstName":"Casey","lastName":"Moreau"}`
		req := httptest.NewRequest(http.MethodPost, "/api/admin/users", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		authorize(t, req, adminID, "user")
		rec := httptest.NewRecorder()

		a.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("create user unauthenticated", func(t *testing.T) {
		t.Parallel()
		a, _ := setupAPI(t)

		req := httptest.NewRequest(http.MethodPost, "/api/admin/users", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()

		a.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("create user with short password", func(t *testing.T) {
		t.Parallel()
		a, _ := setupAPI(t)

		body := `{"email":"casey@example.test","password":"short","firstName":"Casey","lastName":"Moreau"}`
		req := httptest.NewRequest(http.MethodPost, "/api/admin/users", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		authorize(t, req, adminID, "admin")
		rec := httptest.NewRecorder()

		a.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("admin cannot create super admin", func(t *testing.T) {
		t.Parallel()
		a, _ := setupAPI(t)

		body := `{"email":"casey@example.test","password":"s3cret-pass","firstName":"Casey","lastName":"Moreau","role":"super_admin"}`
		req := httptest.NewRequest(http.MethodPost, "/api/admin/users", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		authorize(t, req, adminID, "admin")
		rec := httptest.NewRecorder()

		a.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("list users", func(t *testing.T) {
		t.Parallel()
		a, dbMock := setupAPI(t)

		cols := []string{"id", "email", "first_name", "last_name", "role", "created_at", "updated_at", "count"}
		dbMock.ExpectQuery("SELECT u.id, u.email").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(uuid.New(), "casey@example.test", "Casey", "Moreau", "user", now, now, 2))

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		authorize(t, req, adminID, "admin")
		rec := httptest.NewRecorder()

		a.Router().ServeHTTP(rec, req)

		require.NoError(t, dbMock.ExpectationsWereMet())
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete user cascades coaches", func(t *testing.T) {
		t.Parallel()
		a, dbMock := setupAPI(t)

		victimID := uuid.New()
		userCols := []string{"id", "email", "password_hash", "first_name", "last_name", "role", "created_at", "updated_at"}
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at FROM users WHERE id = $1`)).
			WithArgs(victimID).
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(victimID, "casey@example.test", "hash", "Casey", "Moreau", "user", now, now))
		dbMock.ExpectBegin()
		dbMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM coaches WHERE user_id = $1`)).
			WithArgs(victimID).
			WillReturnResult(sqlmock.NewResult(0, 3))
		dbMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
			WithArgs(victimID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectCommit()

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+victimID.String(), nil)
		authorize(t, req, adminID, "admin")
		rec := httptest.NewRecorder()

		a.Router().ServeHTTP(rec, req)

		require.NoError(t, dbMock.ExpectationsWereMet())
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("cannot delete yourself", func(t *testing.T) {
		t.Parallel()
		a, _ := setupAPI(t)

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+adminID.String(), nil)
		authorize(t, req, adminID, "admin")
		rec := httptest.NewRecorder()

		a.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("set api key requires super admin", func(t *testing.T) {
		t.Parallel()
		a, _ := setupAPI(t)

		req := httptest.NewRequest(http.MethodPut, "/api/admin/keys/geocoder", bytes.NewBufferString(`{"key":"abc123"}`))
		req.Header.Set("Content-Type", "application/json")
		authorize(t, req, adminID, "admin")
		rec := httptest.NewRecorder()

		a.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("set api key as super admin", func(t *testing.T) {
		t.Parallel()
		a, dbMock := setupAPI(t)

		dbMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO api_keys (service, key, updated_by, updated_at) VALUES ($1, $2, $3, $4) ON CONFLICT (service) DO UPDATE SET key = $2, updated_by = $3, updated_at = $4`)).
			WithArgs("geocoder", "abc123", adminID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		req := httptest.NewRequest(http.MethodPut, "/api/admin/keys/Geocoder", bytes.NewBufferString(`{"key":"abc123"}`))
		req.Header.Set("Content-Type", "application/json")
		authorize(t, req, adminID, "super_admin")
		rec := httptest.NewRecorder()

		a.Router().ServeHTTP(rec, req)

		require.NoError(t, dbMock.ExpectationsWereMet())
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("set role unknown value", func(t *testing.T) {
		t.Parallel()
		a, _ := setupAPI(t)

		req := httptest.NewRequest(http.MethodPut, "/api/admin/users/"+uuid.New().String()+"/role", bytes.NewBufferString(`{"role":"owner"}`))
		req.Header.Set("Content-Type", "application/json")
		authorize(t, req, adminID, "admin")
		rec := httptest.NewRecorder()

		a.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
