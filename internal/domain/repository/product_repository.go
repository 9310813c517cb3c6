package repository

import (
	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	CategoryName string // nombre exacto de categoría
	Search       string // substring case-insensitive sobre name o sku
	LowStockOnly bool   // solo productos con stock total <= min_stock_level
}

// ProductWithStock fila del listado: producto + agregado de stock_levels.
// TotalStock y ReservedStock son 0 si el producto no tiene filas de stock.
type ProductWithStock struct {
	Product       entity.Product
	CategoryName  string
	TotalStock    decimal.Decimal
	ReservedStock decimal.Decimal
	IsLowStock    bool // TotalStock <= MinStockLevel (incluye igualdad exacta)
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	ListWithStock(filter ProductFilter) ([]ProductWithStock, error)
}
