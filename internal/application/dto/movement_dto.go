package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Requests de envío (cabecera + líneas) ─────────────────────────────────────

// ReceiptItemRequest línea de recepción.
type ReceiptItemRequest struct {
	ProductID        string          `json:"product_id"`
	LocationID       string          `json:"location_id"`
	QuantityExpected decimal.Decimal `json:"quantity_expected"`
}

// CreateReceiptRequest body para POST /api/receipts.
type CreateReceiptRequest struct {
	SupplierID string               `json:"supplier_id"`
	Items      []ReceiptItemRequest `json:"items" validate:"required,min=1"`
	Notes      string               `json:"notes"`
}

// DeliveryItemRequest línea de entrega.
type DeliveryItemRequest struct {
	ProductID         string          `json:"product_id"`
	LocationID        string          `json:"location_id"`
	QuantityRequested decimal.Decimal `json:"quantity_requested"`
}

// CreateDeliveryRequest body para POST /api/deliveries.
type CreateDeliveryRequest struct {
	SalesOrderID    string                `json:"sales_order_id"`
	CustomerName    string                `json:"customer_name" validate:"required,min=1,max=200"`
	ShippingAddress string                `json:"shipping_address"`
	Items           []DeliveryItemRequest `json:"items" validate:"required,min=1"`
	Notes           string                `json:"notes"`
}

// TransferItemRequest línea de traslado.
type TransferItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     string          `json:"notes"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromLocationID string                `json:"from_location_id" validate:"required"`
	ToLocationID   string                `json:"to_location_id" validate:"required"`
	Items          []TransferItemRequest `json:"items" validate:"required,min=1"`
	Notes          string                `json:"notes"`
}

// AdjustmentItemRequest línea de ajuste. La diferencia se calcula en el servidor.
type AdjustmentItemRequest struct {
	ProductID        string          `json:"product_id"`
	RecordedQuantity decimal.Decimal `json:"recorded_quantity"`
	CountedQuantity  decimal.Decimal `json:"counted_quantity"`
	Notes            string          `json:"notes"`
}

// CreateAdjustmentRequest body para POST /api/adjustments.
type CreateAdjustmentRequest struct {
	LocationID string                  `json:"location_id" validate:"required"`
	Reason     string                  `json:"reason" validate:"required"`
	Items      []AdjustmentItemRequest `json:"items" validate:"required,min=1"`
	Notes      string                  `json:"notes"`
}

// AdvanceStatusRequest body para PATCH /api/{kind}/:id/status.
type AdvanceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ── Responses ────────────────────────────────────────────────────────────────

// ReceiptItemResponse línea de recepción persistida.
type ReceiptItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	LocationID       string          `json:"location_id"`
	QuantityExpected decimal.Decimal `json:"quantity_expected"`
}

// ReceiptResponse recepción persistida.
type ReceiptResponse struct {
	ID            string                `json:"id"`
	ReceiptNumber string                `json:"receipt_number"`
	SupplierID    string                `json:"supplier_id,omitempty"`
	Status        string                `json:"status"`
	TotalItems    int                   `json:"total_items"`
	Notes         string                `json:"notes,omitempty"`
	CreatedBy     string                `json:"created_by"`
	CreatedAt     time.Time             `json:"created_at"`
	Items         []ReceiptItemResponse `json:"items,omitempty"`
}

// DeliveryItemResponse línea de entrega persistida.
type DeliveryItemResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	LocationID        string          `json:"location_id"`
	QuantityRequested decimal.Decimal `json:"quantity_requested"`
}

// DeliveryResponse orden de entrega persistida.
type DeliveryResponse struct {
	ID              string                 `json:"id"`
	OrderNumber     string                 `json:"order_number"`
	SalesOrderID    string                 `json:"sales_order_id,omitempty"`
	CustomerName    string                 `json:"customer_name"`
	ShippingAddress string                 `json:"shipping_address,omitempty"`
	Status          string                 `json:"status"`
	TotalItems      int                    `json:"total_items"`
	Notes           string                 `json:"notes,omitempty"`
	CreatedBy       string                 `json:"created_by"`
	CreatedAt       time.Time              `json:"created_at"`
	Items           []DeliveryItemResponse `json:"items,omitempty"`
}

// TransferItemResponse línea de traslado persistida.
type TransferItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
}

// TransferResponse traslado persistido.
type TransferResponse struct {
	ID             string                 `json:"id"`
	TransferNumber string                 `json:"transfer_number"`
	FromLocationID string                 `json:"from_location_id"`
	ToLocationID   string                 `json:"to_location_id"`
	Status         string                 `json:"status"`
	TotalItems     int                    `json:"total_items"`
	Notes          string                 `json:"notes,omitempty"`
	CreatedBy      string                 `json:"created_by"`
	CreatedAt      time.Time              `json:"created_at"`
	Items          []TransferItemResponse `json:"items,omitempty"`
}

// AdjustmentItemResponse línea de ajuste persistida (incluye la diferencia calculada).
type AdjustmentItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	RecordedQuantity decimal.Decimal `json:"recorded_quantity"`
	CountedQuantity  decimal.Decimal `json:"counted_quantity"`
	Difference       decimal.Decimal `json:"difference"`
	Notes            string          `json:"notes,omitempty"`
}

// AdjustmentResponse ajuste persistido.
type AdjustmentResponse struct {
	ID               string                   `json:"id"`
	AdjustmentNumber string                   `json:"adjustment_number"`
	LocationID       string                   `json:"location_id"`
	Reason           string                   `json:"reason"`
	Status           string                   `json:"status"`
	TotalItems       int                      `json:"total_items"`
	Notes            string                   `json:"notes,omitempty"`
	CreatedBy        string                   `json:"created_by"`
	CreatedAt        time.Time                `json:"created_at"`
	Items            []AdjustmentItemResponse `json:"items,omitempty"`
}

// DocumentListItemResponse fila de los listados de documentos, con joins
// desnormalizados (nombres) e item_count real.
type DocumentListItemResponse struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	Status       string    `json:"status"`
	TotalItems   int       `json:"total_items"`
	ItemCount    int       `json:"item_count"`
	Notes        string    `json:"notes,omitempty"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	SupplierName string    `json:"supplier_name,omitempty"`
	CustomerName string    `json:"customer_name,omitempty"`
	LocationName string    `json:"location_name,omitempty"`
	FromLocation string    `json:"from_location_name,omitempty"`
	ToLocation   string    `json:"to_location_name,omitempty"`
	Reason       string    `json:"reason,omitempty"`
}
