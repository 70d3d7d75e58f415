package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warebase/warebase/internal/shared"
)

// Repository defines persistence operations for the catalog.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Product, int, error)
	Get(ctx context.Context, id int64) (Product, error)
	UpdateStock(ctx context.Context, id int64, stock int) error
	LowStock(ctx context.Context) ([]Product, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const productColumns = `id, name, sku, barcode, outer_barcode, COALESCE(brand, ''),
	COALESCE(description, ''), price, stock, low_stock_threshold, store_id`

// List returns one page of products plus the unpaged total.
func (r *PGRepository) List(ctx context.Context, filter ListFilter) ([]Product, int, error) {
	where := ""
	args := []any{}
	if filter.Query != "" {
		where = " WHERE name ILIKE $1"
		args = append(args, "%"+filter.Query+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}
	// SortColumn comes from the service-side whitelist, never from raw input.
	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		productColumns, where, filter.SortColumn, direction, len(args)+1, len(args)+2)
	args = append(args, filter.Page.Limit, filter.Page.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, product)
	}
	return products, total, rows.Err()
}

// Get fetches one product by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (Product, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns), id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, shared.ErrNotFound
		}
		return Product{}, err
	}
	return product, nil
}

// UpdateStock sets the absolute stock level in a single statement.
func (r *PGRepository) UpdateStock(ctx context.Context, id int64, stock int) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET stock = $2 WHERE id = $1`, id, stock)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// LowStock returns products at or below their low stock threshold.
func (r *PGRepository) LowStock(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf("SELECT %s FROM products WHERE stock <= low_stock_threshold ORDER BY id", productColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Barcode, &p.OuterBarcode, &p.Brand,
		&p.Description, &p.Price, &p.Stock, &p.LowStockThreshold, &p.StoreID)
	return p, err
}

var _ Repository = (*PGRepository)(nil)
