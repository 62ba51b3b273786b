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

// MySQLRevocationRepository stores revocation watermarks in MySQL.
type MySQLRevocationRepository struct {
	db *sql.DB
}

// NewMySQLRevocationRepository creates a new MySQLRevocationRepository.
func NewMySQLRevocationRepository(db *sql.DB) *MySQLRevocationRepository {
	return &MySQLRevocationRepository{db: db}
}

// Upsert stores the watermark. An existing watermark is only ever moved forward.
func (m *MySQLRevocationRepository) Upsert(ctx context.Context, revocation *authDomain.Revocation) error {
	querier := database.GetTx(ctx, m.db)

	userID, err := revocation.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO revocations (user_id, revoked_before) VALUES (?, ?)
			  ON DUPLICATE KEY UPDATE revoked_before = GREATEST(revoked_before, VALUES(revoked_before))`

	if _, err := querier.ExecContext(ctx, query, userID, revocation.RevokedBefore); err != nil {
		return apperrors.Wrap(err, "failed to upsert revocation")
	}
	return nil
}

// Get returns the watermark of an account, or nil when it has none.
func (m *MySQLRevocationRepository) Get(ctx context.Context, userID uuid.UUID) (*authDomain.Revocation, error) {
	querier := database.GetTx(ctx, m.db)

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	revocation := authDomain.Revocation{UserID: userID}
	err = querier.QueryRowContext(ctx, `SELECT revoked_before FROM revocations WHERE user_id = ?`, userIDBytes).
		Scan(&revocation.RevokedBefore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to get revocation")
	}
	return &revocation, nil
}

// DeleteBefore removes watermarks at or before t.
func (m *MySQLRevocationRepository) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM revocations WHERE revoked_before <= ?`, t)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete revocations")
	}
	return affected(result, "failed to delete revocations")
}
