package repository

import (
	"time"

	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
)

// DocumentListItem fila común de los listados de documentos: cabecera
// desnormalizada (nombres en vez de ids) + conteo real de líneas.
type DocumentListItem struct {
	ID             string
	Number         string
	Status         string
	TotalItems     int
	ItemCount      int // COUNT(líneas) persistidas; debe coincidir con TotalItems
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	SupplierName   string // recepciones
	CustomerName   string // entregas
	LocationName   string // ajustes
	FromLocation   string // traslados
	ToLocation     string // traslados
	Reason         string // ajustes
}

// ReceiptRepository persistencia de recepciones. Create inserta cabecera y
// líneas; debe ejecutarse dentro de una transacción (TxRunner).
type ReceiptRepository interface {
	NextNumber() (int64, error) // secuencia por variante, segura bajo concurrencia
	Create(receipt *entity.Receipt) error
	GetByID(id string) (*entity.Receipt, error)
	List(status, supplierID string) ([]DocumentListItem, error)
	UpdateStatus(id, status string) error
}

// DeliveryRepository persistencia de órdenes de entrega.
type DeliveryRepository interface {
	NextNumber() (int64, error)
	Create(delivery *entity.Delivery) error
	GetByID(id string) (*entity.Delivery, error)
	List(status string) ([]DocumentListItem, error)
	UpdateStatus(id, status string) error
}

// TransferRepository persistencia de traslados internos.
type TransferRepository interface {
	NextNumber() (int64, error)
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	List(status string) ([]DocumentListItem, error)
	UpdateStatus(id, status string) error
}

// AdjustmentRepository persistencia de ajustes de inventario.
type AdjustmentRepository interface {
	NextNumber() (int64, error)
	Create(adjustment *entity.Adjustment) error
	GetByID(id string) (*entity.Adjustment, error)
	List(status, locationID string) ([]DocumentListItem, error)
	UpdateStatus(id, status string) error
}
