package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stockmaster/stockmaster-pro/internal/application/analytics"
)

// DashboardHandler expone los indicadores agregados del tablero (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve los cuatro indicadores en una sola lectura coherente.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
