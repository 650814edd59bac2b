package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GoArmGo/PlacesApp/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_Success(t *testing.T) {
	db, mock := newMockDB(t)
	storage := NewUserStorage(db, discardLogger())

	user := &domain.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$04$hash",
	}

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.CreateUser(context.Background(), user)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NotNil(t, user.PlaceIDs, "новый пользователь получает пустой список мест")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	storage := NewUserStorage(db, discardLogger())

	user := &domain.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := storage.CreateUser(context.Background(), user)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmailTaken))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_NotFoundReturnsNilNil(t *testing.T) {
	db, mock := newMockDB(t)
	storage := NewUserStorage(db, discardLogger())

	mock.ExpectQuery(`SELECT \* FROM users WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := storage.GetUserByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID_Found(t *testing.T) {
	db, mock := newMockDB(t)
	storage := NewUserStorage(db, discardLogger())

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "image", "place_ids"}).
		AddRow(id, "Alice", "alice@example.com", "hash", "", []byte("{}"))

	mock.ExpectQuery(`SELECT \* FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(rows)

	user, err := storage.GetUserByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
