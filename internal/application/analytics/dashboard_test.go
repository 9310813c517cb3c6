package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmaster/stockmaster-pro/internal/application/analytics"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
	"github.com/stockmaster/stockmaster-pro/pkg/logger"
)

type fakeStatsRepo struct {
	stats repository.DashboardStats
	calls int
}

func (f *fakeStatsRepo) GetDashboardStats(context.Context) (*repository.DashboardStats, error) {
	f.calls++
	cp := f.stats
	return &cp, nil
}

type fakeCache struct {
	data map[string][]byte
	sets int
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("miss")
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.data[key] = value
	f.sets++
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func TestDashboardGetStats_DevuelveLosCuatroKPIs(t *testing.T) {
	repo := &fakeStatsRepo{stats: repository.DashboardStats{
		TotalProducts:     12,
		LowStockItems:     3,
		PendingReceipts:   2,
		PendingDeliveries: 5,
	}}
	uc := analytics.NewDashboardUseCase(repo, nil, testLogger())

	out, err := uc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, out.TotalProducts)
	assert.Equal(t, 3, out.LowStockItems)
	assert.Equal(t, 2, out.PendingReceipts)
	assert.Equal(t, 5, out.PendingDeliveries)
}

func TestDashboardGetStats_SinCacheConsultaSiempre(t *testing.T) {
	repo := &fakeStatsRepo{}
	uc := analytics.NewDashboardUseCase(repo, nil, testLogger())

	_, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	_, err = uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.calls)
}

func TestDashboardGetStats_SegundaLecturaSirveDesdeCache(t *testing.T) {
	repo := &fakeStatsRepo{stats: repository.DashboardStats{TotalProducts: 7}}
	cache := newFakeCache()
	uc := analytics.NewDashboardUseCase(repo, cache, testLogger())

	first, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, cache.sets, "la primera lectura debe poblar la caché")

	second, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "la segunda lectura no debe tocar la BD")
	assert.Equal(t, first.TotalProducts, second.TotalProducts)
}

func TestDashboardGetStats_CacheCorruptaCaeABD(t *testing.T) {
	repo := &fakeStatsRepo{stats: repository.DashboardStats{TotalProducts: 9}}
	cache := newFakeCache()
	cache.data["dashboard:stats"] = []byte("{no es json")
	uc := analytics.NewDashboardUseCase(repo, cache, testLogger())

	out, err := uc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 9, out.TotalProducts)
	assert.Equal(t, 1, repo.calls)
}
