// Package document define los ciclos de vida ordenados de los documentos de
// movimiento (recepción, entrega, traslado, ajuste) y la regla de avance de
// estado: un paso hacia adelante por vez, sin retrocesos ni saltos.
package document

import (
	"fmt"

	"github.com/stockmaster/stockmaster-pro/internal/domain"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
)

// Kind identifica la variante de documento de movimiento.
type Kind string

const (
	KindReceipt    Kind = "receipt"
	KindDelivery   Kind = "delivery"
	KindTransfer   Kind = "transfer"
	KindAdjustment Kind = "adjustment"
)

// lifecycles estados ordenados por variante; el primero es el inicial,
// el último es terminal.
var lifecycles = map[Kind][]string{
	KindReceipt: {
		entity.ReceiptStatusDraft,
		entity.ReceiptStatusProcessing,
		entity.ReceiptStatusCompleted,
	},
	KindDelivery: {
		entity.DeliveryStatusDraft,
		entity.DeliveryStatusPicking,
		entity.DeliveryStatusPacking,
		entity.DeliveryStatusShipped,
		entity.DeliveryStatusDelivered,
	},
	KindTransfer: {
		entity.TransferStatusDraft,
		entity.TransferStatusInTransit,
		entity.TransferStatusCompleted,
	},
	KindAdjustment: {
		entity.AdjustmentStatusDraft,
		entity.AdjustmentStatusReview,
		entity.AdjustmentStatusApproved,
	},
}

// prefixes prefijo del número de documento por variante.
var prefixes = map[Kind]string{
	KindReceipt:    "RCP",
	KindDelivery:   "DEL",
	KindTransfer:   "TRF",
	KindAdjustment: "ADJ",
}

// Initial devuelve el estado inicial de la variante (siempre draft).
func Initial(kind Kind) string {
	return lifecycles[kind][0]
}

// Lifecycle devuelve los estados ordenados de la variante.
func Lifecycle(kind Kind) []string {
	states := lifecycles[kind]
	out := make([]string, len(states))
	copy(out, states)
	return out
}

// IsTerminal indica si status es el último estado del ciclo de la variante.
func IsTerminal(kind Kind, status string) bool {
	states := lifecycles[kind]
	return len(states) > 0 && states[len(states)-1] == status
}

// ValidateAdvance verifica que target sea exactamente el estado siguiente a
// current en el ciclo de la variante. Retorna ErrInvalidTransition en caso
// contrario (retroceso, salto, estado desconocido o estado terminal).
func ValidateAdvance(kind Kind, current, target string) error {
	states, ok := lifecycles[kind]
	if !ok {
		return fmt.Errorf("%w: variante desconocida %q", domain.ErrInvalidTransition, kind)
	}
	for i, s := range states {
		if s != current {
			continue
		}
		if i == len(states)-1 {
			return fmt.Errorf("%w: %s es estado terminal", domain.ErrInvalidTransition, current)
		}
		if states[i+1] != target {
			return fmt.Errorf("%w: de %s solo se puede avanzar a %s", domain.ErrInvalidTransition, current, states[i+1])
		}
		return nil
	}
	return fmt.Errorf("%w: estado actual desconocido %q", domain.ErrInvalidTransition, current)
}

// FormatNumber construye el número legible del documento: PREFIX-%06d.
// seq debe provenir de una secuencia por variante para garantizar unicidad
// bajo envíos concurrentes.
func FormatNumber(kind Kind, seq int64) string {
	return fmt.Sprintf("%s-%06d", prefixes[kind], seq)
}
