package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/vending/internal/database"
	apperrors "github.com/allisson/vending/internal/errors"
	productDomain "github.com/allisson/vending/internal/product/domain"
)

const mysqlProductColumns = `id, name, cost, amount_available, seller_id, created_at, updated_at`

// MySQLProductRepository implements product persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLProductRepository struct {
	db *sql.DB
}

// NewMySQLProductRepository creates a new MySQLProductRepository.
func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

// Create inserts a new product.
func (r *MySQLProductRepository) Create(ctx context.Context, product *productDomain.Product) error {
	querier := database.GetTx(ctx, r.db)

	id, err := product.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal product id")
	}
	sellerID, err := product.SellerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal seller id")
	}

	query := `INSERT INTO products (id, name, cost, amount_available, seller_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		product.Name,
		product.Cost,
		product.AmountAvailable,
		sellerID,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create product")
	}
	return nil
}

// GetByID retrieves a product by ID.
func (r *MySQLProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*productDomain.Product, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal product id")
	}
	query := `SELECT ` + mysqlProductColumns + ` FROM products WHERE id = ?`
	return r.getOne(ctx, "failed to get product by id", query, idBytes)
}

// GetByIDForUpdate retrieves a product by ID and locks its row for the rest of the transaction.
func (r *MySQLProductRepository) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*productDomain.Product, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal product id")
	}
	query := `SELECT ` + mysqlProductColumns + ` FROM products WHERE id = ? FOR UPDATE`
	return r.getOne(ctx, "failed to lock product", query, idBytes)
}

// Update persists the mutable fields of a product.
func (r *MySQLProductRepository) Update(ctx context.Context, product *productDomain.Product) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := product.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal product id")
	}

	query := `UPDATE products SET name = ?, cost = ?, amount_available = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		product.Name,
		product.Cost,
		product.AmountAvailable,
		product.UpdatedAt,
		idBytes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update product")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to update product")
	}
	if rows == 0 {
		// MySQL counts changed rows, not matched rows.
		if _, err := r.GetByID(ctx, product.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a product.
func (r *MySQLProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal product id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete product")
	}
	return requireAffected(result, "failed to delete product")
}

// List returns a page of products ordered by creation time together with the total number
// of products matching the filter.
func (r *MySQLProductRepository) List(
	ctx context.Context,
	filter productDomain.ListFilter,
) ([]*productDomain.Product, int64, error) {
	querier := database.GetTx(ctx, r.db)

	where := ""
	args := []any{}
	if filter.SearchQuery != "" {
		where = ` WHERE LOWER(name) LIKE LOWER(?)`
		args = append(args, containsPattern(filter.SearchQuery))
	}

	var total int64
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count products")
	}

	query := `SELECT ` + mysqlProductColumns + ` FROM products` + where +
		` ORDER BY created_at, id LIMIT ? OFFSET ?`
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
		product, err := scanMySQLProduct(rows)
		if err != nil {
			return nil, 0, apperrors.Wrap(err, "failed to scan product")
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to iterate products")
	}

	return products, total, nil
}

func (r *MySQLProductRepository) getOne(
	ctx context.Context,
	errMessage string,
	query string,
	args ...any,
) (*productDomain.Product, error) {
	querier := database.GetTx(ctx, r.db)

	product, err := scanMySQLProduct(querier.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, productDomain.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, errMessage)
	}
	return product, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLProduct(row rowScanner) (*productDomain.Product, error) {
	var product productDomain.Product
	var idBytes, sellerBytes []byte
	if err := row.Scan(
		&idBytes,
		&product.Name,
		&product.Cost,
		&product.AmountAvailable,
		&sellerBytes,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := product.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal product id")
	}
	if err := product.SellerID.UnmarshalBinary(sellerBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal seller id")
	}
	return &product, nil
}
