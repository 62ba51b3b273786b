// Package repository provides data persistence implementations for refresh tokens and
// revocation watermarks.
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

// PostgreSQLRefreshTokenRepository implements refresh token persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLRefreshTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLRefreshTokenRepository creates a new PostgreSQLRefreshTokenRepository.
func NewPostgreSQLRefreshTokenRepository(db *sql.DB) *PostgreSQLRefreshTokenRepository {
	return &PostgreSQLRefreshTokenRepository{db: db}
}

// Create inserts a new refresh token. Only the hash of the plain value is stored.
func (p *PostgreSQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO refresh_tokens (id, token_hash, user_id, client_address, expires_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.TokenHash,
		token.UserID,
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
func (p *PostgreSQLRefreshTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token_hash, user_id, client_address, expires_at, created_at
			  FROM refresh_tokens WHERE token_hash = $1`

	var token authDomain.RefreshToken
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.TokenHash,
		&token.UserID,
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
	return &token, nil
}

// Delete removes a refresh token by ID. Returns ErrRefreshTokenNotFound when another
// request already removed it.
func (p *PostgreSQLRefreshTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete refresh token")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to delete refresh token")
	}
	if rows == 0 {
		return authDomain.ErrRefreshTokenNotFound
	}
	return nil
}

// DeleteByUserID removes every refresh token of an account.
func (p *PostgreSQLRefreshTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete user refresh tokens")
	}
	return affected(result, "failed to delete user refresh tokens")
}

// CountActiveByUserIDExcludingAddress counts live sessions of an account opened from
// another client address.
func (p *PostgreSQLRefreshTokenRepository) CountActiveByUserIDExcludingAddress(
	ctx context.Context,
	userID uuid.UUID,
	clientAddress string,
	now time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM refresh_tokens
			  WHERE user_id = $1 AND client_address <> $2 AND expires_at > $3`

	var count int64
	if err := querier.QueryRowContext(ctx, query, userID, clientAddress, now).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count refresh tokens")
	}
	return count, nil
}

// DeleteExpired removes refresh tokens that expired before olderThan.
func (p *PostgreSQLRefreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE expires_at < $1`, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired refresh tokens")
	}
	return affected(result, "failed to delete expired refresh tokens")
}

// CountExpired counts refresh tokens that expired before olderThan.
func (p *PostgreSQLRefreshTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM refresh_tokens WHERE expires_at < $1`, olderThan).
		Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired refresh tokens")
	}
	return count, nil
}

func affected(result sql.Result, errMessage string) (int64, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, errMessage)
	}
	return rows, nil
}
