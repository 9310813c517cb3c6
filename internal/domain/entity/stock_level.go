package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel representa el stock actual de un producto en una ubicación.
// Quantity es el on-hand; ReservedQuantity lo apartado para entregas en picking.
// Cero es un valor de reposo válido: la fila nunca se borra.
type StockLevel struct {
	ProductID        string
	LocationID       string
	Quantity         decimal.Decimal
	ReservedQuantity decimal.Decimal
	UpdatedAt        time.Time
}

// Available devuelve el stock no comprometido (on-hand menos reservado).
func (s *StockLevel) Available() decimal.Decimal {
	return s.Quantity.Sub(s.ReservedQuantity)
}
