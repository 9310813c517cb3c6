package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación de DeliveryRepository sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// NextNumber consume la secuencia de numeración de entregas.
func (r *DeliveryRepo) NextNumber() (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('delivery_number_seq')`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next delivery number: %w", err)
	}
	return seq, nil
}

// Create inserta cabecera y líneas. Debe ejecutarse dentro de una transacción.
func (r *DeliveryRepo) Create(delivery *entity.Delivery) error {
	ctx := context.Background()
	query := `
		INSERT INTO delivery_orders (id, order_number, sales_order_id, customer_name, shipping_address, status, total_items, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		delivery.ID, delivery.OrderNumber, delivery.SalesOrderID, delivery.CustomerName,
		delivery.ShippingAddress, delivery.Status, delivery.TotalItems, delivery.Notes,
		delivery.CreatedBy, delivery.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create delivery: %w", err)
	}
	itemQuery := `
		INSERT INTO delivery_items (id, delivery_id, product_id, location_id, quantity_requested)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range delivery.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.DeliveryID, item.ProductID, item.LocationID, item.QuantityRequested,
		); err != nil {
			return fmt.Errorf("create delivery item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una entrega con sus líneas, o nil si no existe.
func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	ctx := context.Background()
	query := `
		SELECT id, order_number, sales_order_id, customer_name, shipping_address, status, total_items, notes, created_by, created_at
		FROM delivery_orders WHERE id = $1`
	var delivery entity.Delivery
	err := r.q.QueryRow(ctx, query, id).Scan(
		&delivery.ID, &delivery.OrderNumber, &delivery.SalesOrderID, &delivery.CustomerName,
		&delivery.ShippingAddress, &delivery.Status, &delivery.TotalItems, &delivery.Notes,
		&delivery.CreatedBy, &delivery.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	itemQuery := `
		SELECT id, delivery_id, product_id, location_id, quantity_requested
		FROM delivery_items WHERE delivery_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.DeliveryItem
		if err := rows.Scan(&item.ID, &item.DeliveryID, &item.ProductID, &item.LocationID, &item.QuantityRequested); err != nil {
			return nil, fmt.Errorf("scan delivery item: %w", err)
		}
		delivery.Items = append(delivery.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &delivery, nil
}

// List lista entregas con filtro opcional de estado, más reciente primero.
func (r *DeliveryRepo) List(status string) ([]repository.DocumentListItem, error) {
	query := `
		SELECT d.id, d.order_number, d.status, d.total_items, d.notes, d.created_by, d.created_at,
		       d.customer_name,
		       (SELECT COUNT(*) FROM delivery_items di WHERE di.delivery_id = d.id)
		FROM delivery_orders d
		WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND d.status = $%d", len(args))
	}
	query += " ORDER BY d.created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var out []repository.DocumentListItem
	for rows.Next() {
		var row repository.DocumentListItem
		if err := rows.Scan(
			&row.ID, &row.Number, &row.Status, &row.TotalItems, &row.Notes,
			&row.CreatedBy, &row.CreatedAt, &row.CustomerName, &row.ItemCount,
		); err != nil {
			return nil, fmt.Errorf("scan delivery row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// UpdateStatus cambia el estado de la entrega.
func (r *DeliveryRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(), `UPDATE delivery_orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	return nil
}
