package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/vending/internal/auth/domain"
)

func TestPostgreSQLRevocationRepository(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success_UpsertKeepsLaterWatermark", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`ON CONFLICT \(user_id\) DO UPDATE SET revoked_before = GREATEST`).
			WithArgs(userID, testNow).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewPostgreSQLRevocationRepository(db).Upsert(ctx, &authDomain.Revocation{
			UserID:        userID,
			RevokedBefore: testNow,
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_Get", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT revoked_before FROM revocations WHERE user_id = \$1`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"revoked_before"}).AddRow(testNow))

		got, err := NewPostgreSQLRevocationRepository(db).Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, &authDomain.Revocation{UserID: userID, RevokedBefore: testNow}, got)
	})

	t.Run("Success_GetMissingReturnsNil", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("FROM revocations").
			WillReturnRows(sqlmock.NewRows([]string{"revoked_before"}))

		got, err := NewPostgreSQLRevocationRepository(db).Get(ctx, userID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Success_DeleteBefore", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`DELETE FROM revocations WHERE revoked_before <= \$1`).
			WithArgs(testNow).
			WillReturnResult(sqlmock.NewResult(0, 4))

		removed, err := NewPostgreSQLRevocationRepository(db).DeleteBefore(ctx, testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(4), removed)
	})

	t.Run("Error_Get", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("FROM revocations").WillReturnError(errors.New("timeout"))

		_, err := NewPostgreSQLRevocationRepository(db).Get(ctx, userID)
		assert.ErrorContains(t, err, "failed to get revocation")
	})
}

func TestMySQLRevocationRepository(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success_Upsert", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`ON DUPLICATE KEY UPDATE revoked_before = GREATEST`).
			WithArgs(mustBinary(t, userID), testNow).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewMySQLRevocationRepository(db).Upsert(ctx, &authDomain.Revocation{
			UserID:        userID,
			RevokedBefore: testNow,
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_Get", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`WHERE user_id = \?`).
			WithArgs(mustBinary(t, userID)).
			WillReturnRows(sqlmock.NewRows([]string{"revoked_before"}).AddRow(testNow))

		got, err := NewMySQLRevocationRepository(db).Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, testNow, got.RevokedBefore)
	})

	t.Run("Success_DeleteBefore", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`DELETE FROM revocations WHERE revoked_before <= \?`).
			WithArgs(testNow).
			WillReturnResult(sqlmock.NewResult(0, 1))

		removed, err := NewMySQLRevocationRepository(db).DeleteBefore(ctx, testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)
	})
}
