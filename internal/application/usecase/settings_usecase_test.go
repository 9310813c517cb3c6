package usecase_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmaster/stockmaster-pro/internal/application/usecase"
)

func TestSettingsGet_DevuelveDefaults(t *testing.T) {
	uc := usecase.NewSettingsUseCase("StockMaster Pro", "1.0.0")

	got := uc.Get()

	assert.Equal(t, "StockMaster Pro", got.AppName)
	assert.Equal(t, "1.0.0", got.Version)
	assert.True(t, got.Features["low_stock_alerts"], "low_stock_alerts debe venir activado por defecto")
	assert.Equal(t, "USD", got.Preferences["currency"])
	assert.Nil(t, got.UpdatedAt, "sin updates todavía no debe haber updated_at")
}

func TestSettingsUpdate_FusionaClaveAClave(t *testing.T) {
	uc := usecase.NewSettingsUseCase("StockMaster Pro", "1.0.0")

	got := uc.Update(usecase.Settings{
		Features:    map[string]bool{"reports": false},
		Preferences: map[string]interface{}{"currency": "EUR"},
	})

	assert.False(t, got.Features["reports"], "la clave enviada debe reemplazarse")
	assert.True(t, got.Features["barcode_scanning"], "las claves no enviadas deben conservarse")
	assert.Equal(t, "EUR", got.Preferences["currency"])
	assert.Equal(t, "UTC", got.Preferences["timezone"])
	require.NotNil(t, got.UpdatedAt, "el update debe sellar updated_at")
}

// La copia devuelta por Get no debe compartir mapas con el estado interno:
// mutarla no puede afectar lecturas posteriores.
func TestSettingsGet_CopiaIndependiente(t *testing.T) {
	uc := usecase.NewSettingsUseCase("StockMaster Pro", "1.0.0")

	first := uc.Get()
	first.Features["reports"] = false
	first.Preferences["currency"] = "COP"

	second := uc.Get()
	assert.True(t, second.Features["reports"], "mutar la copia no debe tocar el estado interno")
	assert.Equal(t, "USD", second.Preferences["currency"])
}

// Lecturas serializadas fuera del lock (como hace el handler con c.JSON)
// concurrentes con updates no deben compartir mapas vivos.
func TestSettings_GetYUpdateConcurrentes(t *testing.T) {
	uc := usecase.NewSettingsUseCase("StockMaster Pro", "1.0.0")

	const iterations = 50
	var wg sync.WaitGroup
	wg.Add(2 * iterations)
	for i := 0; i < iterations; i++ {
		go func() {
			defer wg.Done()
			got := uc.Get()
			_, err := json.Marshal(got)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			got := uc.Update(usecase.Settings{
				Features:      map[string]bool{"reports": false},
				Notifications: map[string]interface{}{"low_stock_threshold": 5},
			})
			_, err := json.Marshal(got)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final := uc.Get()
	assert.False(t, final.Features["reports"])
	assert.Equal(t, 5, final.Notifications["low_stock_threshold"])
}
