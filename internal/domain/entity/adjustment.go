package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un ajuste de inventario.
const (
	AdjustmentStatusDraft    = "draft"
	AdjustmentStatusReview   = "review"
	AdjustmentStatusApproved = "approved"
)

// AdjustmentReasons vocabulario fijo de motivos de ajuste.
var AdjustmentReasons = []string{
	"Cycle Count",
	"Physical Count",
	"Damage",
	"Theft",
	"Expiry",
	"Quality Issue",
	"System Error",
	"Other",
}

// IsValidAdjustmentReason indica si el motivo pertenece al vocabulario fijo.
func IsValidAdjustmentReason(reason string) bool {
	for _, r := range AdjustmentReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Adjustment representa un ajuste de inventario en una ubicación (conteo físico
// contra el registro del sistema). Al pasar a approved aplica la diferencia de
// cada línea sobre el stock de la ubicación del documento.
type Adjustment struct {
	ID               string
	AdjustmentNumber string // ADJ-000001, único
	LocationID       string
	Reason           string // uno de AdjustmentReasons
	Status           string
	TotalItems       int
	Notes            string
	CreatedBy        string
	CreatedAt        time.Time
	Items            []AdjustmentItem
}

// AdjustmentItem línea de ajuste. Difference = CountedQuantity - RecordedQuantity
// (positiva = sobrante encontrado, negativa = faltante).
type AdjustmentItem struct {
	ID               string
	AdjustmentID     string
	ProductID        string
	RecordedQuantity decimal.Decimal
	CountedQuantity  decimal.Decimal
	Difference       decimal.Decimal
	Notes            string
}
