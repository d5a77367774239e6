package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/tu-usuario/supermarket-pro/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetMetrics godoc
// @Summary      Métricas generales del inventario
// @Description  Productos activos, bajo mínimo, agotados, próximos a vencer y
// @Description  valor total del inventario a costo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardMetricsDTO
// @Router       /api/dashboard/metrics [get]
func (h *DashboardHandler) GetMetrics(c *fiber.Ctx) error {
	out, err := h.uc.GetMetrics(c.Context())
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// GetLowStock godoc
// @Summary      Detalle de productos bajo mínimo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockResponse
// @Router       /api/dashboard/low-stock [get]
func (h *DashboardHandler) GetLowStock(c *fiber.Ctx) error {
	out, err := h.uc.GetLowStock(c.Context())
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}
