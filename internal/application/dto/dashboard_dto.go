package dto

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Los cuatro KPIs se leen en un único snapshot para no mostrar conteos desfasados.
type DashboardStatsDTO struct {
	TotalProducts     int `json:"totalProducts"`     // productos distintos con stock > 0
	LowStockItems     int `json:"lowStockItems"`     // stock total <= min_stock_level
	PendingReceipts   int `json:"pendingReceipts"`   // estados draft, waiting
	PendingDeliveries int `json:"pendingDeliveries"` // estados draft, picking, packing, ready
}
