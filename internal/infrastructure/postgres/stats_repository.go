package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo implementación de StatsRepository sobre PostgreSQL.
// A diferencia de los demás repositorios recibe el pool directamente: necesita
// abrir su propia transacción de solo lectura para el snapshot.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de métricas.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// GetDashboardStats lee los cuatro KPIs dentro de una única transacción
// REPEATABLE READ de solo lectura: los conteos salen del mismo snapshot y
// nunca se contradicen entre sí.
func (r *StatsRepo) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("begin stats transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var stats repository.DashboardStats

	// Productos distintos con stock en mano
	err = tx.QueryRow(ctx, `
		SELECT COUNT(DISTINCT product_id)
		FROM stock_levels WHERE quantity > 0`).Scan(&stats.TotalProducts)
	if err != nil {
		return nil, fmt.Errorf("count products with stock: %w", err)
	}

	// Productos en o por debajo de su mínimo (sin filas de stock cuentan como 0)
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM (
			SELECT p.id
			FROM products p
			LEFT JOIN stock_levels sl ON sl.product_id = p.id
			GROUP BY p.id, p.min_stock_level
			HAVING COALESCE(SUM(sl.quantity), 0) <= p.min_stock_level
		) low`).Scan(&stats.LowStockItems)
	if err != nil {
		return nil, fmt.Errorf("count low stock items: %w", err)
	}

	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM receipts
		WHERE status IN ('draft', 'waiting')`).Scan(&stats.PendingReceipts)
	if err != nil {
		return nil, fmt.Errorf("count pending receipts: %w", err)
	}

	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM delivery_orders
		WHERE status IN ('draft', 'picking', 'packing', 'ready')`).Scan(&stats.PendingDeliveries)
	if err != nil {
		return nil, fmt.Errorf("count pending deliveries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit stats transaction: %w", err)
	}
	return &stats, nil
}
