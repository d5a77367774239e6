package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
	appproduct "github.com/tu-usuario/supermarket-pro/internal/application/product"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos (protegido).
type ProductHandler struct {
	uc *appproduct.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *appproduct.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// GetBySKU godoc
// @Summary      Obtener producto por SKU
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/sku/{sku} [get]
func (h *ProductHandler) GetBySKU(c *fiber.Ctx) error {
	out, err := h.uc.GetBySKU(c.Params("sku"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// GetByBarcode godoc
// @Summary      Obtener producto por código de barras
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        barcode  path  string  true  "Código de barras"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/barcode/{barcode} [get]
func (h *ProductHandler) GetByBarcode(c *fiber.Ctx) error {
	out, err := h.uc.GetByBarcode(c.Params("barcode"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos activos con filtros
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page          query  int     false  "Página (desde 1)"  default(1)
// @Param        per_page      query  int     false  "Tamaño de página"  default(20)
// @Param        category      query  string  false  "Categoría"
// @Param        subcategory   query  string  false  "Subcategoría"
// @Param        brand         query  string  false  "Marca"
// @Param        supplier_id   query  string  false  "Proveedor"
// @Param        stock_status  query  string  false  "OUT_OF_STOCK | LOW_STOCK | NORMAL | OVERSTOCK"
// @Param        perishable    query  bool    false  "Solo perecederos"
// @Param        search        query  string  false  "Busca en nombre, descripción, SKU y barcode"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "query inválida")
	}

	filter := repository.ProductFilter{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Brand:       c.Query("brand"),
		SupplierID:  c.Query("supplier_id"),
		StockStatus: c.Query("stock_status"),
		Search:      c.Query("search"),
	}
	if raw := c.Query("perishable"); raw != "" {
		perishable := raw == "true" || raw == "1"
		filter.Perishable = &perishable
	}

	out, err := h.uc.List(filter, page)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (el SKU y el stock no se tocan por aquí)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Archivar producto (soft delete)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.Params("id")); err != nil {
		return RespondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto archivado"})
}

// AdjustStock godoc
// @Summary      Ajustar stock registrando el movimiento en el libro
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Ajuste (cantidad nueva y motivo)"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjust-stock [post]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.AdjustStock(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// Adjustments godoc
// @Summary      Historial de ajustes de stock de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}   dto.StockAdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjustments [get]
func (h *ProductHandler) Adjustments(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías activas con sus subcategorías
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  repository.Category
// @Router       /api/products/categories [get]
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories()
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}
