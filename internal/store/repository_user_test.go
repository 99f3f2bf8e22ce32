package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-api-gate/internal/logger"
	"github.com/MKhiriev/go-api-gate/models"
)

func newMockRepository(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := &DB{
		DB:      conn,
		driver:  "postgres",
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  logger.Nop(),
	}

	return NewUserRepository(db, logger.Nop()), mock
}

func userRows(users ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"user_id", "email", "name", "password_hash", "password_salt", "created_at"})
	for _, u := range users {
		rows.AddRow(u.UserID, u.Email, u.Name, u.PasswordHash, u.PasswordSalt, u.CreatedAt)
	}
	return rows
}

func TestUserRepository_ListUsers(t *testing.T) {
	repo, mock := newMockRepository(t)

	now := time.Now().UTC().Truncate(time.Second)
	mock.ExpectQuery("SELECT user_id, email, name, password_hash, password_salt, created_at FROM users").
		WillReturnRows(userRows(
			models.User{UserID: 1, Email: "first@example.com", CreatedAt: now},
			models.User{UserID: 2, Email: "second@example.com", Name: "Second", CreatedAt: now},
		))

	users, err := repo.ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "first@example.com", users[0].Email)
	assert.Equal(t, "Second", users[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListUsers_EmptyIsNotAnError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT .+ FROM users").WillReturnRows(userRows())

	users, err := repo.ListUsers(context.Background())

	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users, "an empty table must yield an empty list, not null")
}

func TestUserRepository_FindUserByID(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE user_id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(userRows(models.User{UserID: 42, Email: "user@example.com"}))

	user, err := repo.FindUserByID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestUserRepository_FindUserByID_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE user_id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(userRows())

	_, err := repo.FindUserByID(context.Background(), 404)

	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_FindUserByEmail_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnRows(userRows())

	_, err := repo.FindUserByEmail(context.Background(), "ghost@example.com")

	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_CreateUser(t *testing.T) {
	repo, mock := newMockRepository(t)

	now := time.Now().UTC().Truncate(time.Second)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("new@example.com", "New User", "hash", "salt").
		WillReturnRows(userRows(models.User{
			UserID:       7,
			Email:        "new@example.com",
			Name:         "New User",
			PasswordHash: "hash",
			PasswordSalt: "salt",
			CreatedAt:    now,
		}))

	created, err := repo.CreateUser(context.Background(), models.User{
		Email:        "new@example.com",
		Name:         "New User",
		PasswordHash: "hash",
		PasswordSalt: "salt",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.UserID)
	assert.Equal(t, now, created.CreatedAt)
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.CreateUser(context.Background(), models.User{Email: "taken@example.com"})

	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserRepository_UpdateUser(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("UPDATE users SET email = .+ WHERE user_id = ").
		WithArgs("renamed@example.com", "Renamed", int64(7)).
		WillReturnRows(userRows(models.User{UserID: 7, Email: "renamed@example.com", Name: "Renamed"}))

	updated, err := repo.UpdateUser(context.Background(), models.User{
		UserID: 7,
		Email:  "renamed@example.com",
		Name:   "Renamed",
	})

	require.NoError(t, err)
	assert.Equal(t, "renamed@example.com", updated.Email)
}

func TestUserRepository_UpdateUser_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("UPDATE users SET").
		WillReturnRows(userRows())

	_, err := repo.UpdateUser(context.Background(), models.User{UserID: 404, Email: "x@example.com"})

	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_DeleteUser(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`DELETE FROM users WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteUser(context.Background(), 7)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteUser_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteUser(context.Background(), 404)

	require.ErrorIs(t, err, ErrUserNotFound)
}
