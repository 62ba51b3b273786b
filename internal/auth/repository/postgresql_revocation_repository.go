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

// PostgreSQLRevocationRepository stores revocation watermarks in PostgreSQL.
type PostgreSQLRevocationRepository struct {
	db *sql.DB
}

// NewPostgreSQLRevocationRepository creates a new PostgreSQLRevocationRepository.
func NewPostgreSQLRevocationRepository(db *sql.DB) *PostgreSQLRevocationRepository {
	return &PostgreSQLRevocationRepository{db: db}
}

// Upsert stores the watermark. An existing watermark is only ever moved forward.
func (p *PostgreSQLRevocationRepository) Upsert(ctx context.Context, revocation *authDomain.Revocation) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO revocations (user_id, revoked_before) VALUES ($1, $2)
			  ON CONFLICT (user_id)
			  DO UPDATE SET revoked_before = GREATEST(revocations.revoked_before, EXCLUDED.revoked_before)`

	if _, err := querier.ExecContext(ctx, query, revocation.UserID, revocation.RevokedBefore); err != nil {
		return apperrors.Wrap(err, "failed to upsert revocation")
	}
	return nil
}

// Get returns the watermark of an account, or nil when it has none.
func (p *PostgreSQLRevocationRepository) Get(ctx context.Context, userID uuid.UUID) (*authDomain.Revocation, error) {
	querier := database.GetTx(ctx, p.db)

	revocation := authDomain.Revocation{UserID: userID}
	err := querier.QueryRowContext(ctx, `SELECT revoked_before FROM revocations WHERE user_id = $1`, userID).
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
func (p *PostgreSQLRevocationRepository) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM revocations WHERE revoked_before <= $1`, t)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete revocations")
	}
	return affected(result, "failed to delete revocations")
}
