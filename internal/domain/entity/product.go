package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// El stock se maneja por ubicación en StockLevel; aquí solo viven los datos de referencia.
type Product struct {
	ID            string
	SKU           string // código único global
	Name          string
	Description   string
	UnitOfMeasure string          // pcs, kg, box...
	MinStockLevel decimal.Decimal // umbral de reorden; stock total <= umbral => low stock
	CategoryID    string          // vacío si no tiene categoría
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
