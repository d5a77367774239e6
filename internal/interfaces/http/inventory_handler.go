package http

import (
	"github.com/gofiber/fiber/v2"

	appinventory "github.com/tu-usuario/supermarket-pro/internal/application/inventory"
)

// InventoryHandler maneja los endpoints de reposición (protegido).
type InventoryHandler struct {
	reorderUC *appinventory.ReorderUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(reorderUC *appinventory.ReorderUseCase) *InventoryHandler {
	return &InventoryHandler{reorderUC: reorderUC}
}

// ReorderSuggestions godoc
// @Summary      Sugerencias de reposición para productos bajo mínimo
// @Description  Ordena primero los agotados y después por severidad (stock/mínimo).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReorderSuggestionsResponse
// @Router       /api/inventory/reorder-suggestions [get]
func (h *InventoryHandler) ReorderSuggestions(c *fiber.Ctx) error {
	out, err := h.reorderUC.Suggestions()
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}
