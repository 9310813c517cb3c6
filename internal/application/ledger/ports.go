// Package ledger implementa el núcleo de movimientos de inventario: envío de
// documentos (recepción, entrega, traslado, ajuste) como unidad atómica
// cabecera+líneas, y avance de estado con efectos sobre el stock dentro de la
// misma transacción.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción de BD.
type Repos struct {
	Receipts    repository.ReceiptRepository
	Deliveries  repository.DeliveryRepository
	Transfers   repository.TransferRepository
	Adjustments repository.AdjustmentRepository
	Stock       repository.StockLevelRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger:
// o se persisten cabecera y todas las líneas, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// DeliveryNoteLine línea desnormalizada para la nota de entrega en PDF.
type DeliveryNoteLine struct {
	SKU          string
	ProductName  string
	LocationName string
	Quantity     decimal.Decimal
}

// DeliveryNoteGenerator genera el documento de picking/entrega imprimible.
type DeliveryNoteGenerator interface {
	GenerateDeliveryNote(ctx context.Context, delivery *entity.Delivery, lines []DeliveryNoteLine) ([]byte, error)
}
