package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-video-vault/internal/logger"
	"github.com/MKhiriev/go-video-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows(users ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"user_id", "login", "password_hash", "name", "is_admin",
		"signing_key_id", "public_key", "created_at",
	})
	for _, u := range users {
		rows.AddRow(u.UserID, u.Login, u.PasswordHash, u.Name, u.IsAdmin,
			u.SigningKeyID, u.PublicKey, u.CreatedAt)
	}
	return rows
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	user := models.User{
		Login:        "alice",
		PasswordHash: "argon2id$...",
		Name:         "Alice",
		SigningKeyID: "user-key-alice",
		PublicKey:    "pubkey",
	}
	want := user
	want.UserID = 1
	want.CreatedAt = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.Login, user.PasswordHash, user.Name, user.IsAdmin, user.SigningKeyID, user.PublicKey).
		WillReturnRows(userRows(want))

	got, err := repo.CreateUser(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindUserByLogin_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE login = \$1`).
		WithArgs("ghost").
		WillReturnRows(userRows())

	_, err := repo.FindUserByLogin(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestUserRepository_FindUserByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	want := models.User{
		UserID:       42,
		Login:        "alice",
		Name:         "Alice",
		SigningKeyID: "user-key-alice",
		PublicKey:    "pubkey",
		CreatedAt:    time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE user_id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(userRows(want))

	got, err := repo.FindUserByID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}
