package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL
// (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el nivel de stock de un producto en una ubicación.
// Si no hay fila devuelve un nivel en cero sin crearla.
func (r *StockLevelRepo) Get(productID, locationID string) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, location_id, quantity, reserved_quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND location_id = $2`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.ReservedQuantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroLevel(productID, locationID), nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el nivel y bloquea la fila (SELECT FOR UPDATE) para
// serializar verificación y delta dentro de la misma transacción.
func (r *StockLevelRepo) GetForUpdate(productID, locationID string) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, location_id, quantity, reserved_quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.ReservedQuantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroLevel(productID, locationID), nil
		}
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &s, nil
}

// ApplyDelta incrementa/decrementa quantity y reserved_quantity con un upsert
// aditivo: la suma ocurre en la BD, nunca se pisa un valor leído antes.
func (r *StockLevelRepo) ApplyDelta(productID, locationID string, quantityDelta, reservedDelta decimal.Decimal) error {
	query := `
		INSERT INTO stock_levels (product_id, location_id, quantity, reserved_quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET
			quantity = stock_levels.quantity + EXCLUDED.quantity,
			reserved_quantity = stock_levels.reserved_quantity + EXCLUDED.reserved_quantity,
			updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, productID, locationID, quantityDelta, reservedDelta)
	if err != nil {
		return fmt.Errorf("apply stock delta: %w", err)
	}
	return nil
}

// TotalStock suma quantity sobre todas las ubicaciones del producto.
func (r *StockLevelRepo) TotalStock(productID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_levels WHERE product_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total stock: %w", err)
	}
	return total, nil
}

// LowStockProductIDs productos cuyo stock total es menor o igual a su mínimo.
// Productos sin filas de stock cuentan como 0 (LEFT JOIN).
func (r *StockLevelRepo) LowStockProductIDs() ([]string, error) {
	query := `
		SELECT p.id
		FROM products p
		LEFT JOIN stock_levels sl ON sl.product_id = p.id
		GROUP BY p.id, p.min_stock_level
		HAVING COALESCE(SUM(sl.quantity), 0) <= p.min_stock_level`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan low stock product: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func zeroLevel(productID, locationID string) *entity.StockLevel {
	return &entity.StockLevel{
		ProductID:        productID,
		LocationID:       locationID,
		Quantity:         decimal.Zero,
		ReservedQuantity: decimal.Zero,
	}
}
