package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	"github.com/allisson/vending/internal/database"
	apperrors "github.com/allisson/vending/internal/errors"
)

// MySQLRefreshTokenRepository implements refresh token persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLRefreshTokenRepository struct {
	db *sql.DB
}

// NewMySQLRefreshTokenRepository creates a new MySQLRefreshTokenRepository.
func NewMySQLRefreshTokenRepository(db *sql.DB) *MySQLRefreshTokenRepository {
	return &MySQLRefreshTokenRepository{db: db}
}

// Create inserts a new refresh token. Only the hash of the plain value is stored.
func (m *MySQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, m.db)

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal refresh token id")
	}

	userID, err := token.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO refresh_tokens (id, token_hash, user_id, client_address, expires_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.TokenHash,
		userID,
		token.ClientAddress,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create refresh token")
	}
	return nil
}

// GetByTokenHash retrieves a refresh token by the hash of its plain value.
func (m *MySQLRefreshTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token_hash, user_id, client_address, expires_at, created_at
			  FROM refresh_tokens WHERE token_hash = ?`

	var token authDomain.RefreshToken
	var id, userID []byte
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&id,
		&token.TokenHash,
		&userID,
		&token.ClientAddress,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrRefreshTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get refresh token")
	}

	if err := token.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal refresh token id")
	}
	if err := token.UserID.UnmarshalBinary(userID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}
	return &token, nil
}

// Delete removes a refresh token by ID. Returns ErrRefreshTokenNotFound when another
// request already removed it.
func (m *MySQLRefreshTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal refresh token id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete refresh token")
	}

	rows, err := affected(result, "failed to delete refresh token")
	if err != nil {
		return err
	}
	if rows == 0 {
		return authDomain.ErrRefreshTokenNotFound
	}
	return nil
}

// DeleteByUserID removes every refresh token of an account.
func (m *MySQLRefreshTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal user id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE user_id = ?`, userIDBytes)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete user refresh tokens")
	}
	return affected(result, "failed to delete user refresh tokens")
}

// CountActiveByUserIDExcludingAddress counts live sessions of an account opened from
// another client address.
func (m *MySQLRefreshTokenRepository) CountActiveByUserIDExcludingAddress(
	ctx context.Context,
	userID uuid.UUID,
	clientAddress string,
	now time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT COUNT(*) FROM refresh_tokens
			  WHERE user_id = ? AND client_address <> ? AND expires_at > ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, userIDBytes, clientAddress, now).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count refresh tokens")
	}
	return count, nil
}

// DeleteExpired removes refresh tokens that expired before olderThan.
func (m *MySQLRefreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE expires_at < ?`, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired refresh tokens")
	}
	return affected(result, "failed to delete expired refresh tokens")
}

// CountExpired counts refresh tokens that expired before olderThan.
func (m *MySQLRefreshTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM refresh_tokens WHERE expires_at < ?`, olderThan).
		Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired refresh tokens")
	}
	return count, nil
}
