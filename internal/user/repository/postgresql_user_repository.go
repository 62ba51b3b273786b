// Package repository provides data persistence implementations for user entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/vending/internal/database"
	apperrors "github.com/allisson/vending/internal/errors"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

const postgresUserColumns = `id, username, password, role, deposit, created_at, updated_at`

// PostgreSQLUserRepository implements account persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts a new account. A username already used case-insensitively returns
// ErrUsernameTaken.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, password, role, deposit, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Password,
		string(user.Role),
		user.Deposit,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return userDomain.ErrUsernameTaken
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves an account by ID.
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	query := `SELECT ` + postgresUserColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, "failed to get user by id", query, id)
}

// GetByIDForUpdate retrieves an account by ID and locks its row for the rest of the transaction.
func (r *PostgreSQLUserRepository) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*userDomain.User, error) {
	query := `SELECT ` + postgresUserColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, "failed to lock user", query, id)
}

// GetByUsername retrieves an account by username, ignoring case.
func (r *PostgreSQLUserRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*userDomain.User, error) {
	query := `SELECT ` + postgresUserColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`
	return r.getOne(ctx, "failed to get user by username", query, username)
}

// Update persists the username and password of an account.
func (r *PostgreSQLUserRepository) Update(ctx context.Context, user *userDomain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET username = $1, password = $2, updated_at = $3 WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, user.Username, user.Password, user.UpdatedAt, user.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return userDomain.ErrUsernameTaken
		}
		return apperrors.Wrap(err, "failed to update user")
	}
	return requireAffected(result, "failed to update user")
}

// UpdateDeposit sets the balance of an account and stamps updated_at with updatedAt.
func (r *PostgreSQLUserRepository) UpdateDeposit(
	ctx context.Context,
	id uuid.UUID,
	deposit int64,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET deposit = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, deposit, updatedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user deposit")
	}
	return requireAffected(result, "failed to update user deposit")
}

// Delete removes an account. Its refresh tokens go with it through the foreign key.
func (r *PostgreSQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	return requireAffected(result, "failed to delete user")
}

func (r *PostgreSQLUserRepository) getOne(
	ctx context.Context,
	errMessage string,
	query string,
	args ...any,
) (*userDomain.User, error) {
	querier := database.GetTx(ctx, r.db)

	var user userDomain.User
	var role string
	err := querier.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&role,
		&user.Deposit,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, errMessage)
	}

	user.Role = userDomain.Role(role)
	return &user, nil
}

// requireAffected turns a statement that touched no row into ErrUserNotFound.
func requireAffected(result sql.Result, errMessage string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, errMessage)
	}
	if rows == 0 {
		return userDomain.ErrUserNotFound
	}
	return nil
}
