package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stockmaster/stockmaster-pro/internal/domain"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta un producto. SKU duplicado se reporta como ErrDuplicate.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, unit_of_measure, min_stock_level, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SKU, p.Name, p.Description, p.UnitOfMeasure, p.MinStockLevel, p.CategoryID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, p.SKU)
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, o nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getBy("id = $1", id)
}

// GetBySKU obtiene un producto por SKU, o nil si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getBy("sku = $1", sku)
}

func (r *ProductRepo) getBy(where string, arg any) (*entity.Product, error) {
	query := `
		SELECT id, sku, name, description, unit_of_measure, min_stock_level, COALESCE(category_id::text, ''), created_at, updated_at
		FROM products WHERE ` + where
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitOfMeasure, &p.MinStockLevel, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListWithStock lista productos con su agregado de stock_levels y el nombre de
// la categoría, aplicando filtros de categoría, búsqueda y solo-stock-bajo.
func (r *ProductRepo) ListWithStock(filter repository.ProductFilter) ([]repository.ProductWithStock, error) {
	query := `
		SELECT p.id, p.sku, p.name, p.description, p.unit_of_measure, p.min_stock_level,
		       COALESCE(p.category_id::text, ''), p.created_at, p.updated_at,
		       COALESCE(c.name, ''),
		       COALESCE(SUM(sl.quantity), 0) AS total_stock,
		       COALESCE(SUM(sl.reserved_quantity), 0) AS reserved_stock
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN stock_levels sl ON sl.product_id = p.id
		WHERE 1=1`
	args := []any{}

	if filter.CategoryName != "" {
		args = append(args, filter.CategoryName)
		query += fmt.Sprintf(" AND c.name = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (LOWER(p.name) LIKE LOWER($%d) OR LOWER(p.sku) LIKE LOWER($%d))", len(args), len(args))
	}

	query += `
		GROUP BY p.id, p.sku, p.name, p.description, p.unit_of_measure, p.min_stock_level, p.category_id, p.created_at, p.updated_at, c.name`
	if filter.LowStockOnly {
		query += `
		HAVING COALESCE(SUM(sl.quantity), 0) <= p.min_stock_level`
	}
	query += `
		ORDER BY p.created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductWithStock
	for rows.Next() {
		var row repository.ProductWithStock
		if err := rows.Scan(
			&row.Product.ID, &row.Product.SKU, &row.Product.Name, &row.Product.Description,
			&row.Product.UnitOfMeasure, &row.Product.MinStockLevel, &row.Product.CategoryID,
			&row.Product.CreatedAt, &row.Product.UpdatedAt,
			&row.CategoryName, &row.TotalStock, &row.ReservedStock,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		row.IsLowStock = row.TotalStock.LessThanOrEqual(row.Product.MinStockLevel)
		out = append(out, row)
	}
	return out, rows.Err()
}
