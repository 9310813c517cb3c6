package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmaster/stockmaster-pro/internal/domain"
	"github.com/stockmaster/stockmaster-pro/internal/domain/document"
)

// Todos los ciclos arrancan en draft.
func TestInitial_SiempreDraft(t *testing.T) {
	for _, kind := range []document.Kind{
		document.KindReceipt, document.KindDelivery,
		document.KindTransfer, document.KindAdjustment,
	} {
		assert.Equal(t, "draft", document.Initial(kind), "el estado inicial de %s debe ser draft", kind)
	}
}

// Avanzar un paso por vez recorre el ciclo completo sin error.
func TestValidateAdvance_RecorreCicloCompleto(t *testing.T) {
	for _, kind := range []document.Kind{
		document.KindReceipt, document.KindDelivery,
		document.KindTransfer, document.KindAdjustment,
	} {
		states := document.Lifecycle(kind)
		require.NotEmpty(t, states)
		for i := 0; i < len(states)-1; i++ {
			assert.NoError(t, document.ValidateAdvance(kind, states[i], states[i+1]),
				"%s: %s -> %s debe ser válido", kind, states[i], states[i+1])
		}
		assert.True(t, document.IsTerminal(kind, states[len(states)-1]))
	}
}

// Saltarse un estado intermedio debe fallar.
func TestValidateAdvance_SaltoRechazado(t *testing.T) {
	err := document.ValidateAdvance(document.KindDelivery, "draft", "shipped")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Retroceder debe fallar.
func TestValidateAdvance_RetrocesoRechazado(t *testing.T) {
	err := document.ValidateAdvance(document.KindReceipt, "completed", "processing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Desde un estado terminal no hay transiciones salientes.
func TestValidateAdvance_TerminalSinSalida(t *testing.T) {
	err := document.ValidateAdvance(document.KindAdjustment, "approved", "draft")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Estado actual desconocido debe fallar con ErrInvalidTransition.
func TestValidateAdvance_EstadoDesconocido(t *testing.T) {
	err := document.ValidateAdvance(document.KindTransfer, "waiting", "completed")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// El número de documento lleva el prefijo de la variante y sufijo de secuencia.
func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "RCP-000001", document.FormatNumber(document.KindReceipt, 1))
	assert.Equal(t, "DEL-000042", document.FormatNumber(document.KindDelivery, 42))
	assert.Equal(t, "TRF-123456", document.FormatNumber(document.KindTransfer, 123456))
	assert.Equal(t, "ADJ-1000000", document.FormatNumber(document.KindAdjustment, 1000000))
}
