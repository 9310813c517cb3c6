package usecase

import (
	"sync"
	"time"
)

// Settings configuración de la aplicación expuesta al frontend.
// Se mantiene en memoria: no hay tabla de settings todavía.
type Settings struct {
	AppName       string                 `json:"app_name"`
	Version       string                 `json:"version"`
	Features      map[string]bool        `json:"features"`
	Preferences   map[string]interface{} `json:"preferences"`
	Notifications map[string]interface{} `json:"notifications"`
	UpdatedAt     *time.Time             `json:"updated_at,omitempty"`
}

// SettingsUseCase lectura y actualización de settings, protegidas por mutex.
type SettingsUseCase struct {
	mu       sync.RWMutex
	settings Settings
}

// NewSettingsUseCase construye el caso de uso con los valores por defecto.
func NewSettingsUseCase(appName, version string) *SettingsUseCase {
	return &SettingsUseCase{settings: Settings{
		AppName: appName,
		Version: version,
		Features: map[string]bool{
			"barcode_scanning": true,
			"low_stock_alerts": true,
			"multi_location":   true,
			"reports":          true,
		},
		Preferences: map[string]interface{}{
			"default_location_id": "",
			"currency":            "USD",
			"timezone":            "UTC",
			"date_format":         "MM/DD/YYYY",
		},
		Notifications: map[string]interface{}{
			"email_alerts":        true,
			"push_notifications":  false,
			"low_stock_threshold": 10,
		},
	}}
}

// Get devuelve una copia de los settings actuales. Los mapas se copian en
// profundidad: el valor devuelto se serializa fuera del lock y no debe
// compartir memoria con el estado interno.
func (uc *SettingsUseCase) Get() Settings {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.settings.clone()
}

// Update fusiona los campos recibidos sobre los settings actuales y sella
// updated_at. Los mapas reemplazan clave a clave, no el mapa completo.
func (uc *SettingsUseCase) Update(in Settings) Settings {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if in.AppName != "" {
		uc.settings.AppName = in.AppName
	}
	if in.Version != "" {
		uc.settings.Version = in.Version
	}
	for k, v := range in.Features {
		uc.settings.Features[k] = v
	}
	for k, v := range in.Preferences {
		uc.settings.Preferences[k] = v
	}
	for k, v := range in.Notifications {
		uc.settings.Notifications[k] = v
	}
	now := time.Now()
	uc.settings.UpdatedAt = &now
	return uc.settings.clone()
}

// clone copia los settings con mapas nuevos. Debe llamarse con el lock tomado.
func (s Settings) clone() Settings {
	out := s
	out.Features = make(map[string]bool, len(s.Features))
	for k, v := range s.Features {
		out.Features[k] = v
	}
	out.Preferences = make(map[string]interface{}, len(s.Preferences))
	for k, v := range s.Preferences {
		out.Preferences[k] = v
	}
	out.Notifications = make(map[string]interface{}, len(s.Notifications))
	for k, v := range s.Notifications {
		out.Notifications[k] = v
	}
	return out
}
