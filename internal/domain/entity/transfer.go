package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado interno.
const (
	TransferStatusDraft     = "draft"
	TransferStatusInTransit = "in_transit"
	TransferStatusCompleted = "completed"
)

// Transfer representa un traslado interno entre dos ubicaciones (cabecera + líneas).
// FromLocationID y ToLocationID deben ser distintos. Al pasar a completed
// resta en origen y suma en destino la cantidad de cada línea.
type Transfer struct {
	ID             string
	TransferNumber string // TRF-000001, único
	FromLocationID string
	ToLocationID   string
	Status         string
	TotalItems     int
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	Items          []TransferItem
}

// TransferItem línea de traslado: producto + cantidad movida.
type TransferItem struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   decimal.Decimal
	Notes      string
}
