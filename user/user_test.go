package user_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-coach/user"
)

func TestUser(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := user.NewAccessor(db)

	userID := uuid.New()
	now := time.Now()

	sample := user.User{
		Email:        "casey@example.test",
		PasswordHash: "$2a$10$notarealhash",
		FirstName:    "Casey",
		LastName:     "Moreau",
		Role:         user.RoleUser,
	}

	t.Run("create user", func(t *testing.T) {
		insertQuery := `INSERT INTO users (id, email, password_hash, first_name, last_name, role, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
		dbMock.ExpectExec(regexp.QuoteMeta(insertQuery)).
			WithArgs(sqlmock.AnyArg(), sample.Email, sample.PasswordHash, sample.FirstName, sample.LastName, sample.Role, now).
			WillReturnResult(sqlmock.NewResult(1, 1))

		created, err := a.CreateUser(context.Background(), sample, now)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, sample.Email, created.Email)
		assert.Equal(t, now, created.CreatedAt)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("create user with bad email", func(t *testing.T) {
		invalid := sample
		invalid.Email = "not-an-email"
		_, err := a.CreateUser(context.Background(), invalid, now)
		require.Error(t, err)
	})

	t.Run("create user with unknown role", func(t *testing.T) {
		invalid := sample
		invalid.Role = "owner"
		_, err := a.CreateUser(context.Background(), invalid, now)
		require.Error(t, err)
	})

	t.Run("get user by email - no rows", func(t *testing.T) {
		selectQuery := `SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at FROM users WHERE email = $1`
		dbMock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
			WithArgs("missing@example.test").
			WillReturnError(sql.ErrNoRows)

		u, err := a.GetUserByEmail(context.Background(), "missing@example.test")
		require.NoError(t, err)
		require.Nil(t, u)
	})

	t.Run("get users includes coach counts", func(t *testing.T) {
		listQuery := `SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.created_at, u.updated_at, COUNT(c.id) FROM users u LEFT JOIN coaches c ON c.user_id = u.id GROUP BY u.id ORDER BY u.created_at`
		cols := []string{"id", "email", "first_name", "last_name", "role", "created_at", "updated_at", "count"}
		dbMock.ExpectQuery(regexp.QuoteMeta(listQuery)).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(userID, sample.Email, sample.FirstName, sample.LastName, sample.Role, now, now, 3).
				AddRow(uuid.New(), "other@example.test", "Alex", "Okafor", user.RoleAdmin, now, now, 0))

		users, err := a.GetUsers(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, 3, users[0].CoachCount)
		assert.Equal(t, 0, users[1].CoachCount)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("set role", func(t *testing.T) {
		updateQuery := `UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`
		dbMock.ExpectExec(regexp.QuoteMeta(updateQuery)).
			WithArgs(user.RoleAdmin, now, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, a.SetRole(context.Background(), userID, user.RoleAdmin, now))
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("set unknown role refused", func(t *testing.T) {
		require.Error(t, a.SetRole(context.Background(), userID, "owner", now))
	})

	t.Run("delete user removes their coaches first", func(t *testing.T) {
		dbMock.ExpectBegin()
		dbMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM coaches WHERE user_id = $1`)).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 4))
		dbMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectCommit()

		require.NoError(t, a.DeleteUser(context.Background(), userID))
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}
