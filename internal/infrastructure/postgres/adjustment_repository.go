package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de AdjustmentRepository sobre PostgreSQL.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// NextNumber consume la secuencia de numeración de ajustes.
func (r *AdjustmentRepo) NextNumber() (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('adjustment_number_seq')`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next adjustment number: %w", err)
	}
	return seq, nil
}

// Create inserta cabecera y líneas (con la diferencia ya calculada).
// Debe ejecutarse dentro de una transacción.
func (r *AdjustmentRepo) Create(adjustment *entity.Adjustment) error {
	ctx := context.Background()
	query := `
		INSERT INTO inventory_adjustments (id, adjustment_number, location_id, reason, status, total_items, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		adjustment.ID, adjustment.AdjustmentNumber, adjustment.LocationID, adjustment.Reason,
		adjustment.Status, adjustment.TotalItems, adjustment.Notes, adjustment.CreatedBy, adjustment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create adjustment: %w", err)
	}
	itemQuery := `
		INSERT INTO adjustment_items (id, adjustment_id, product_id, recorded_quantity, counted_quantity, difference, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, item := range adjustment.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.AdjustmentID, item.ProductID,
			item.RecordedQuantity, item.CountedQuantity, item.Difference, item.Notes,
		); err != nil {
			return fmt.Errorf("create adjustment item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un ajuste con sus líneas, o nil si no existe.
func (r *AdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	ctx := context.Background()
	query := `
		SELECT id, adjustment_number, location_id, reason, status, total_items, notes, created_by, created_at
		FROM inventory_adjustments WHERE id = $1`
	var adjustment entity.Adjustment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&adjustment.ID, &adjustment.AdjustmentNumber, &adjustment.LocationID, &adjustment.Reason,
		&adjustment.Status, &adjustment.TotalItems, &adjustment.Notes, &adjustment.CreatedBy, &adjustment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}

	itemQuery := `
		SELECT id, adjustment_id, product_id, recorded_quantity, counted_quantity, difference, notes
		FROM adjustment_items WHERE adjustment_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get adjustment items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.AdjustmentItem
		if err := rows.Scan(
			&item.ID, &item.AdjustmentID, &item.ProductID,
			&item.RecordedQuantity, &item.CountedQuantity, &item.Difference, &item.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan adjustment item: %w", err)
		}
		adjustment.Items = append(adjustment.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &adjustment, nil
}

// List lista ajustes con filtros opcionales de estado y ubicación, más reciente primero.
func (r *AdjustmentRepo) List(status, locationID string) ([]repository.DocumentListItem, error) {
	query := `
		SELECT a.id, a.adjustment_number, a.status, a.total_items, a.notes, a.created_by, a.created_at,
		       COALESCE(l.name, ''), a.reason,
		       (SELECT COUNT(*) FROM adjustment_items ai WHERE ai.adjustment_id = a.id)
		FROM inventory_adjustments a
		LEFT JOIN locations l ON l.id = a.location_id
		WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND a.status = $%d", len(args))
	}
	if locationID != "" {
		args = append(args, locationID)
		query += fmt.Sprintf(" AND a.location_id = $%d", len(args))
	}
	query += " ORDER BY a.created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var out []repository.DocumentListItem
	for rows.Next() {
		var row repository.DocumentListItem
		if err := rows.Scan(
			&row.ID, &row.Number, &row.Status, &row.TotalItems, &row.Notes,
			&row.CreatedBy, &row.CreatedAt, &row.LocationName, &row.Reason, &row.ItemCount,
		); err != nil {
			return nil, fmt.Errorf("scan adjustment row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// UpdateStatus cambia el estado del ajuste.
func (r *AdjustmentRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(), `UPDATE inventory_adjustments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update adjustment status: %w", err)
	}
	return nil
}
