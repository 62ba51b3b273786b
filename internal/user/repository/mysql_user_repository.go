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

const mysqlUserColumns = `id, username, password, role, deposit, created_at, updated_at`

// MySQLUserRepository implements account persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a new account. A username already used case-insensitively returns
// ErrUsernameTaken.
func (r *MySQLUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	querier := database.GetTx(ctx, r.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO users (id, username, password, role, deposit, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}
	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE id = ?`
	return r.getOne(ctx, "failed to get user by id", query, idBytes)
}

// GetByIDForUpdate retrieves an account by ID and locks its row for the rest of the transaction.
func (r *MySQLUserRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}
	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE id = ? FOR UPDATE`
	return r.getOne(ctx, "failed to lock user", query, idBytes)
}

// GetByUsername retrieves an account by username, ignoring case.
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE LOWER(username) = LOWER(?)`
	return r.getOne(ctx, "failed to get user by username", query, username)
}

// Update persists the username and password of an account.
func (r *MySQLUserRepository) Update(ctx context.Context, user *userDomain.User) error {
	querier := database.GetTx(ctx, r.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `UPDATE users SET username = ?, password = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, user.Username, user.Password, user.UpdatedAt, id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return userDomain.ErrUsernameTaken
		}
		return apperrors.Wrap(err, "failed to update user")
	}
	return requireAffected(result, "failed to update user")
}

// UpdateDeposit sets the balance of an account and stamps updated_at with updatedAt.
func (r *MySQLUserRepository) UpdateDeposit(
	ctx context.Context,
	id uuid.UUID,
	deposit int64,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `UPDATE users SET deposit = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, deposit, updatedAt, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user deposit")
	}
	// MySQL reports zero affected rows when the value did not change, so a miss is
	// confirmed with a lookup.
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to update user deposit")
	}
	if rows == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an account. Its refresh tokens go with it through the foreign key.
func (r *MySQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	return requireAffected(result, "failed to delete user")
}

func (r *MySQLUserRepository) getOne(
	ctx context.Context,
	errMessage string,
	query string,
	args ...any,
) (*userDomain.User, error) {
	querier := database.GetTx(ctx, r.db)

	var user userDomain.User
	var idBytes []byte
	var role string
	err := querier.QueryRowContext(ctx, query, args...).Scan(
		&idBytes,
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

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}
	user.Role = userDomain.Role(role)
	return &user, nil
}
