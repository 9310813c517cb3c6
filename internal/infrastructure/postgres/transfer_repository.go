package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// NextNumber consume la secuencia de numeración de traslados.
func (r *TransferRepo) NextNumber() (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('transfer_number_seq')`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next transfer number: %w", err)
	}
	return seq, nil
}

// Create inserta cabecera y líneas. Debe ejecutarse dentro de una transacción.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	ctx := context.Background()
	query := `
		INSERT INTO internal_transfers (id, transfer_number, from_location_id, to_location_id, status, total_items, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		transfer.ID, transfer.TransferNumber, transfer.FromLocationID, transfer.ToLocationID,
		transfer.Status, transfer.TotalItems, transfer.Notes, transfer.CreatedBy, transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	itemQuery := `
		INSERT INTO transfer_items (id, transfer_id, product_id, quantity, notes)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range transfer.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.TransferID, item.ProductID, item.Quantity, item.Notes,
		); err != nil {
			return fmt.Errorf("create transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un traslado con sus líneas, o nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	ctx := context.Background()
	query := `
		SELECT id, transfer_number, from_location_id, to_location_id, status, total_items, notes, created_by, created_at
		FROM internal_transfers WHERE id = $1`
	var transfer entity.Transfer
	err := r.q.QueryRow(ctx, query, id).Scan(
		&transfer.ID, &transfer.TransferNumber, &transfer.FromLocationID, &transfer.ToLocationID,
		&transfer.Status, &transfer.TotalItems, &transfer.Notes, &transfer.CreatedBy, &transfer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}

	itemQuery := `
		SELECT id, transfer_id, product_id, quantity, notes
		FROM transfer_items WHERE transfer_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get transfer items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.TransferItem
		if err := rows.Scan(&item.ID, &item.TransferID, &item.ProductID, &item.Quantity, &item.Notes); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		transfer.Items = append(transfer.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &transfer, nil
}

// List lista traslados con filtro opcional de estado, más reciente primero.
// Incluye los nombres de las ubicaciones origen y destino.
func (r *TransferRepo) List(status string) ([]repository.DocumentListItem, error) {
	query := `
		SELECT t.id, t.transfer_number, t.status, t.total_items, t.notes, t.created_by, t.created_at,
		       COALESCE(lf.name, ''), COALESCE(lt.name, ''),
		       (SELECT COUNT(*) FROM transfer_items ti WHERE ti.transfer_id = t.id)
		FROM internal_transfers t
		LEFT JOIN locations lf ON lf.id = t.from_location_id
		LEFT JOIN locations lt ON lt.id = t.to_location_id
		WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND t.status = $%d", len(args))
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []repository.DocumentListItem
	for rows.Next() {
		var row repository.DocumentListItem
		if err := rows.Scan(
			&row.ID, &row.Number, &row.Status, &row.TotalItems, &row.Notes,
			&row.CreatedBy, &row.CreatedAt, &row.FromLocation, &row.ToLocation, &row.ItemCount,
		); err != nil {
			return nil, fmt.Errorf("scan transfer row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// UpdateStatus cambia el estado del traslado.
func (r *TransferRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(), `UPDATE internal_transfers SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	return nil
}
