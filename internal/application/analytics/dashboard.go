// Package analytics expone las métricas agregadas del dashboard.
package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stockmaster/stockmaster-pro/internal/application/dto"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
	"github.com/stockmaster/stockmaster-pro/pkg/logger"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// Cache puerto mínimo de caché para el dashboard. Cualquier error de Get se
// trata como miss: la caché nunca debe tumbar la lectura de métricas.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DashboardUseCase lectura de los cuatro KPIs en un snapshot único, con caché
// opcional de 30 segundos.
type DashboardUseCase struct {
	statsRepo repository.StatsRepository
	cache     Cache // nil si la caché no está habilitada
	log       *logger.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(statsRepo repository.StatsRepository, cache Cache, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{statsRepo: statsRepo, cache: cache, log: log}
}

// GetStats devuelve los KPIs del dashboard. Con caché habilitada sirve el
// snapshot cacheado hasta 30 segundos; si no, consulta la BD y repuebla.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, statsCacheKey); err == nil {
			var cached dto.DashboardStatsDTO
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			} else {
				uc.log.Warn().Err(err).Msg("payload de caché de dashboard corrupto, se ignora")
			}
		}
	}

	stats, err := uc.statsRepo.GetDashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.DashboardStatsDTO{
		TotalProducts:     stats.TotalProducts,
		LowStockItems:     stats.LowStockItems,
		PendingReceipts:   stats.PendingReceipts,
		PendingDeliveries: stats.PendingDeliveries,
	}

	if uc.cache != nil {
		raw, _ := json.Marshal(out)
		if err := uc.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo poblar la caché del dashboard")
		}
	}
	return out, nil
}
