package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/models"
)

/*
UsersStore Test Cases:

1. TestUsersStore_Create_Success
   - Insert returns the generated id and created_at

2. TestUsersStore_Create_DuplicateEmail
   - Unique violation (23505) maps to ErrDuplicateEmail

3. TestUsersStore_GetByEmail_Success
   - Row scans into the user model

4. TestUsersStore_GetByEmail_NotFound
   - Missing row surfaces sql.ErrNoRows

5. TestUsersStore_SetVerified
   - Update affects one row; zero rows surfaces sql.ErrNoRows
*/

func newMockStore(t *testing.T) (*UsersStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &UsersStore{db: db}, mock
}

func TestUsersStore_Create_Success(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("user@example.com", "Ada", "Lovelace", "hashed", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	user := &models.User{
		Email:        "user@example.com",
		Firstname:    "Ada",
		Lastname:     "Lovelace",
		PasswordHash: "hashed",
	}
	require.NoError(t, store.Create(context.Background(), user))

	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_Create_DuplicateEmail(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := store.Create(context.Background(), &models.User{Email: "user@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_GetByEmail_Success(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "email", "firstname", "lastname", "password_hash", "is_verified", "created_at"}).
		AddRow(int64(7), "user@example.com", "Ada", "Lovelace", "hashed", true, now)
	mock.ExpectQuery(`SELECT id, email, firstname, lastname, password_hash`).
		WithArgs("user@example.com").
		WillReturnRows(rows)

	user, err := store.GetByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "Ada", user.Firstname)
	assert.True(t, user.IsVerified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_GetByEmail_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, email, firstname, lastname, password_hash`).
		WithArgs("absent@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetByEmail(context.Background(), "absent@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_SetVerified(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE users SET is_verified = TRUE`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.SetVerified(context.Background(), 7))

	mock.ExpectExec(`UPDATE users SET is_verified = TRUE`).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, store.SetVerified(context.Background(), 8), sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}
