package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de entrega.
const (
	DeliveryStatusDraft     = "draft"
	DeliveryStatusPicking   = "picking"
	DeliveryStatusPacking   = "packing"
	DeliveryStatusShipped   = "shipped"
	DeliveryStatusDelivered = "delivered"
)

// Delivery representa una orden de entrega saliente (cabecera + líneas).
// En picking se reserva el stock solicitado; en shipped se libera la reserva
// y se descuenta el on-hand. delivered es solo cambio de estado.
type Delivery struct {
	ID              string
	OrderNumber     string // DEL-000001, único
	SalesOrderID    string // referencia externa opcional
	CustomerName    string
	ShippingAddress string
	Status          string
	TotalItems      int
	Notes           string
	CreatedBy       string
	CreatedAt       time.Time
	Items           []DeliveryItem
}

// DeliveryItem línea de entrega: producto + ubicación origen + cantidad solicitada.
type DeliveryItem struct {
	ID                string
	DeliveryID        string
	ProductID         string
	LocationID        string
	QuantityRequested decimal.Decimal
}
