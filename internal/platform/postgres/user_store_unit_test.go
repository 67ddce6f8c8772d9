package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/n0secutiry/taskapi/internal/domain"
	"github.com/n0secutiry/taskapi/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockUserStore(t *testing.T) (*PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresUserStore(db, nil), mock
}

func TestPostgresUserStore_Create(t *testing.T) {
	s, mock := newMockUserStore(t)

	user, err := domain.NewUser("a@example.com", "$2a$04$hash")
	require.NoError(t, err)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@example.com", "$2a$04$hash", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	require.NoError(t, s.Create(context.Background(), user))
	assert.Equal(t, int64(5), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_CreateDuplicate(t *testing.T) {
	s, mock := newMockUserStore(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"})

	user, err := domain.NewUser("a@example.com", "$2a$04$hash")
	require.NoError(t, err)

	err = s.Create(context.Background(), user)
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPostgresUserStore_GetByEmail(t *testing.T) {
	s, mock := newMockUserStore(t)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, email, hashed_password, created_at FROM users WHERE email").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at"}).
			AddRow(1, "a@example.com", "hash", created))
	mock.ExpectQuery("SELECT id, email, hashed_password, created_at FROM users WHERE email").
		WithArgs("A@example.com").
		WillReturnError(sql.ErrNoRows)

	user, err := s.GetByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "hash", user.HashedPassword)
	assert.Equal(t, created, user.CreatedAt)

	_, err = s.GetByEmail(context.Background(), "A@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

