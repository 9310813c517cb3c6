package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository sobre PostgreSQL.
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// NextNumber consume la secuencia de numeración de recepciones. La secuencia
// nunca entrega dos veces el mismo valor, aunque la transacción haga rollback.
func (r *ReceiptRepo) NextNumber() (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('receipt_number_seq')`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next receipt number: %w", err)
	}
	return seq, nil
}

// Create inserta cabecera y líneas. Debe ejecutarse dentro de una transacción.
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	ctx := context.Background()
	query := `
		INSERT INTO receipts (id, receipt_number, supplier_id, status, total_items, notes, created_by, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		receipt.ID, receipt.ReceiptNumber, receipt.SupplierID, receipt.Status,
		receipt.TotalItems, receipt.Notes, receipt.CreatedBy, receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create receipt: %w", err)
	}
	itemQuery := `
		INSERT INTO receipt_items (id, receipt_id, product_id, location_id, quantity_expected)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range receipt.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.ReceiptID, item.ProductID, item.LocationID, item.QuantityExpected,
		); err != nil {
			return fmt.Errorf("create receipt item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una recepción con sus líneas, o nil si no existe.
func (r *ReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	ctx := context.Background()
	query := `
		SELECT id, receipt_number, COALESCE(supplier_id::text, ''), status, total_items, notes, created_by, created_at
		FROM receipts WHERE id = $1`
	var receipt entity.Receipt
	err := r.q.QueryRow(ctx, query, id).Scan(
		&receipt.ID, &receipt.ReceiptNumber, &receipt.SupplierID, &receipt.Status,
		&receipt.TotalItems, &receipt.Notes, &receipt.CreatedBy, &receipt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}

	itemQuery := `
		SELECT id, receipt_id, product_id, location_id, quantity_expected
		FROM receipt_items WHERE receipt_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get receipt items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.ReceiptItem
		if err := rows.Scan(&item.ID, &item.ReceiptID, &item.ProductID, &item.LocationID, &item.QuantityExpected); err != nil {
			return nil, fmt.Errorf("scan receipt item: %w", err)
		}
		receipt.Items = append(receipt.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// List lista recepciones (cabecera desnormalizada + conteo de líneas) con
// filtros opcionales de estado y proveedor, más reciente primero.
func (r *ReceiptRepo) List(status, supplierID string) ([]repository.DocumentListItem, error) {
	query := `
		SELECT r.id, r.receipt_number, r.status, r.total_items, r.notes, r.created_by, r.created_at,
		       COALESCE(s.name, ''),
		       (SELECT COUNT(*) FROM receipt_items ri WHERE ri.receipt_id = r.id)
		FROM receipts r
		LEFT JOIN suppliers s ON s.id = r.supplier_id
		WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if supplierID != "" {
		args = append(args, supplierID)
		query += fmt.Sprintf(" AND r.supplier_id = $%d", len(args))
	}
	query += " ORDER BY r.created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var out []repository.DocumentListItem
	for rows.Next() {
		var row repository.DocumentListItem
		if err := rows.Scan(
			&row.ID, &row.Number, &row.Status, &row.TotalItems, &row.Notes,
			&row.CreatedBy, &row.CreatedAt, &row.SupplierName, &row.ItemCount,
		); err != nil {
			return nil, fmt.Errorf("scan receipt row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// UpdateStatus cambia el estado de la recepción.
func (r *ReceiptRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(), `UPDATE receipts SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update receipt status: %w", err)
	}
	return nil
}
