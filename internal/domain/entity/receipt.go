package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una recepción de mercancía.
const (
	ReceiptStatusDraft      = "draft"
	ReceiptStatusProcessing = "processing"
	ReceiptStatusCompleted  = "completed"
)

// Receipt representa una recepción de mercancía entrante (cabecera + líneas).
// Al pasar a completed suma quantity_expected al stock de la ubicación de cada línea.
type Receipt struct {
	ID            string
	ReceiptNumber string // RCP-000001, único
	SupplierID    string // vacío si no hay proveedor asociado
	Status        string
	TotalItems    int // cantidad de líneas
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	Items         []ReceiptItem
}

// ReceiptItem línea de recepción: producto + ubicación destino + cantidad esperada.
type ReceiptItem struct {
	ID               string
	ReceiptID        string
	ProductID        string
	LocationID       string
	QuantityExpected decimal.Decimal
}
