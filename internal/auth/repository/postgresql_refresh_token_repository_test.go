package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/vending/internal/auth/domain"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestRefreshToken() *authDomain.RefreshToken {
	return &authDomain.RefreshToken{
		ID:            uuid.Must(uuid.NewV7()),
		TokenHash:     "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		UserID:        uuid.Must(uuid.NewV7()),
		ClientAddress: "10.0.0.1",
		ExpiresAt:     testNow.Add(15 * 24 * time.Hour),
		CreatedAt:     testNow,
	}
}

func refreshTokenRow(token *authDomain.RefreshToken, id, userID any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "token_hash", "user_id", "client_address", "expires_at", "created_at"}).
		AddRow(id, token.TokenHash, userID, token.ClientAddress, token.ExpiresAt, token.CreatedAt)
}

func TestPostgreSQLRefreshTokenRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		token := newTestRefreshToken()

		mock.ExpectExec("INSERT INTO refresh_tokens").
			WithArgs(token.ID, token.TokenHash, token.UserID, token.ClientAddress, token.ExpiresAt, token.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgreSQLRefreshTokenRepository(db).Create(ctx, token))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO refresh_tokens").WillReturnError(errors.New("connection reset"))

		err := NewPostgreSQLRefreshTokenRepository(db).Create(ctx, newTestRefreshToken())
		assert.ErrorContains(t, err, "failed to create refresh token")
	})
}

func TestPostgreSQLRefreshTokenRepository_GetByTokenHash(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		token := newTestRefreshToken()

		mock.ExpectQuery(`FROM refresh_tokens WHERE token_hash = \$1`).
			WithArgs(token.TokenHash).
			WillReturnRows(refreshTokenRow(token, token.ID.String(), token.UserID.String()))

		got, err := NewPostgreSQLRefreshTokenRepository(db).GetByTokenHash(ctx, token.TokenHash)
		require.NoError(t, err)
		assert.Equal(t, token, got)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("FROM refresh_tokens").WillReturnError(sql.ErrNoRows)

		_, err := NewPostgreSQLRefreshTokenRepository(db).GetByTokenHash(ctx, "missing")
		assert.ErrorIs(t, err, authDomain.ErrRefreshTokenNotFound)
	})
}

func TestPostgreSQLRefreshTokenRepository_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`DELETE FROM refresh_tokens WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgreSQLRefreshTokenRepository(db).Delete(ctx, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_AlreadyConsumed", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("DELETE FROM refresh_tokens").WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewPostgreSQLRefreshTokenRepository(db).Delete(ctx, id)
		assert.ErrorIs(t, err, authDomain.ErrRefreshTokenNotFound)
	})
}

func TestPostgreSQLRefreshTokenRepository_DeleteByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.Must(uuid.NewV7())

	mock.ExpectExec(`DELETE FROM refresh_tokens WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := NewPostgreSQLRefreshTokenRepository(db).DeleteByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}

func TestPostgreSQLRefreshTokenRepository_CountActiveByUserIDExcludingAddress(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM refresh_tokens WHERE user_id = \$1 AND client_address <> \$2 AND expires_at > \$3`).
			WithArgs(userID, "10.0.0.1", testNow).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := NewPostgreSQLRefreshTokenRepository(db).
			CountActiveByUserIDExcludingAddress(ctx, userID, "10.0.0.1", testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("timeout"))

		_, err := NewPostgreSQLRefreshTokenRepository(db).
			CountActiveByUserIDExcludingAddress(ctx, userID, "10.0.0.1", testNow)
		assert.ErrorContains(t, err, "failed to count refresh tokens")
	})
}

func TestPostgreSQLRefreshTokenRepository_Expired(t *testing.T) {
	ctx := context.Background()
	olderThan := testNow.AddDate(0, 0, -7)

	t.Run("Success_DeleteExpired", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`DELETE FROM refresh_tokens WHERE expires_at < \$1`).
			WithArgs(olderThan).
			WillReturnResult(sqlmock.NewResult(0, 5))

		removed, err := NewPostgreSQLRefreshTokenRepository(db).DeleteExpired(ctx, olderThan)
		require.NoError(t, err)
		assert.Equal(t, int64(5), removed)
	})

	t.Run("Success_CountExpired", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM refresh_tokens WHERE expires_at < \$1`).
			WithArgs(olderThan).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := NewPostgreSQLRefreshTokenRepository(db).CountExpired(ctx, olderThan)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})
}
