package repository

import "context"

// DashboardStats KPIs del dashboard, leídos en un único snapshot consistente.
type DashboardStats struct {
	TotalProducts     int // productos distintos con stock > 0
	LowStockItems     int // productos con stock total <= min_stock_level
	PendingReceipts   int // recepciones en estado draft o waiting
	PendingDeliveries int // entregas en draft, picking, packing o ready
}

// StatsRepository define el puerto read-only del Dashboard Aggregator.
// La implementación debe ejecutar las consultas dentro de una misma
// transacción de solo lectura para no presentar conteos desfasados.
type StatsRepository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}
