package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/allisson/vending/internal/database"
	apperrors "github.com/allisson/vending/internal/errors"
	productDomain "github.com/allisson/vending/internal/product/domain"
)

const postgresProductColumns = `id, name, cost, amount_available, seller_id, created_at, updated_at`

// PostgreSQLProductRepository implements product persistence for PostgreSQL.
type PostgreSQLProductRepository struct {
	db *sql.DB
}

// NewPostgreSQLProductRepository creates a new PostgreSQLProductRepository.
func NewPostgreSQLProductRepository(db *sql.DB) *PostgreSQLProductRepository {
	return &PostgreSQLProductRepository{db: db}
}

// Create inserts a new product.
func (r *PostgreSQLProductRepository) Create(ctx context.Context, product *productDomain.Product) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO products (id, name, cost, amount_available, seller_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Cost,
		product.AmountAvailable,
		product.SellerID,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create product")
	}
	return nil
}

// GetByID retrieves a product by ID.
func (r *PostgreSQLProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*productDomain.Product, error) {
	query := `SELECT ` + postgresProductColumns + ` FROM products WHERE id = $1`
	return r.getOne(ctx, "failed to get product by id", query, id)
}

// GetByIDForUpdate retrieves a product by ID and locks its row for the rest of the transaction.
func (r *PostgreSQLProductRepository) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*productDomain.Product, error) {
	query := `SELECT ` + postgresProductColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, "failed to lock product", query, id)
}

// Update persists the mutable fields of a product.
func (r *PostgreSQLProductRepository) Update(ctx context.Context, product *productDomain.Product) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE products SET name = $1, cost = $2, amount_available = $3, updated_at = $4
			  WHERE id = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		product.Name,
		product.Cost,
		product.AmountAvailable,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update product")
	}
	return requireAffected(result, "failed to update product")
}

// Delete removes a product.
func (r *PostgreSQLProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete product")
	}
	return requireAffected(result, "failed to delete product")
}

// List returns a page of products ordered by creation time together with the total number
// of products matching the filter.
func (r *PostgreSQLProductRepository) List(
	ctx context.Context,
	filter productDomain.ListFilter,
) ([]*productDomain.Product, int64, error) {
	querier := database.GetTx(ctx, r.db)

	where := ""
	args := []any{}
	if filter.SearchQuery != "" {
		where = ` WHERE name ILIKE $1`
		args = append(args, containsPattern(filter.SearchQuery))
	}

	var total int64
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count products")
	}

	query := `SELECT ` + postgresProductColumns + ` FROM products` + where +
		fmt.Sprintf(` ORDER BY created_at, id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list products")
	}
	defer func() {
		_ = rows.Close()
	}()

	products := make([]*productDomain.Product, 0, filter.PageSize)
	for rows.Next() {
		var product productDomain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Cost,
			&product.AmountAvailable,
			&product.SellerID,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, 0, apperrors.Wrap(err, "failed to scan product")
		}
		products = append(products, &product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to iterate products")
	}

	return products, total, nil
}

func (r *PostgreSQLProductRepository) getOne(
	ctx context.Context,
	errMessage string,
	query string,
	args ...any,
) (*productDomain.Product, error) {
	querier := database.GetTx(ctx, r.db)

	var product productDomain.Product
	err := querier.QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Cost,
		&product.AmountAvailable,
		&product.SellerID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, productDomain.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, errMessage)
	}
	return &product, nil
}
