package repository

import (
	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
)

// StockLevelRepository define el puerto para consultar/actualizar stock por
// producto+ubicación. Las mutaciones se usan dentro de transacciones para
// garantizar consistencia; GetForUpdate bloquea la fila (SELECT FOR UPDATE)
// y serializa deltas concurrentes sobre la misma clave.
type StockLevelRepository interface {
	Get(productID, locationID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila para update; si no existe devuelve una fila
	// en cero sin crearla (ApplyDelta la crea al escribir).
	GetForUpdate(productID, locationID string) (*entity.StockLevel, error)
	// ApplyDelta incrementa/decrementa quantity y reserved_quantity de forma
	// atómica (upsert aditivo). Cero es un valor de reposo válido.
	ApplyDelta(productID, locationID string, quantityDelta, reservedDelta decimal.Decimal) error
	// TotalStock suma quantity sobre todas las ubicaciones del producto (0 si no hay filas).
	TotalStock(productID string) (decimal.Decimal, error)
	// LowStockProductIDs productos con stock total <= min_stock_level
	// (productos sin filas de stock cuentan como 0).
	LowStockProductIDs() ([]string, error)
}
