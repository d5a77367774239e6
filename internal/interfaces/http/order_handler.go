package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/supermarket-pro/internal/application/dto"
	"github.com/tu-usuario/supermarket-pro/internal/application/purchasing"
	"github.com/tu-usuario/supermarket-pro/internal/domain/repository"
)

// OrderHandler maneja las peticiones HTTP de órdenes de compra, recepción y
// tracking de envíos (protegido).
type OrderHandler struct {
	uc         *purchasing.UseCase
	pdfUC      *purchasing.PDFUseCase
	feedParser purchasing.FeedParser
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *purchasing.UseCase, pdfUC *purchasing.PDFUseCase, feedParser purchasing.FeedParser) *OrderHandler {
	return &OrderHandler{uc: uc, pdfUC: pdfUC, feedParser: feedParser}
}

// Create godoc
// @Summary      Crear orden de compra
// @Description  Nace en PENDING con su tracking en PENDING; save_as_draft=true la deja en DRAFT.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Orden con sus líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
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
// @Summary      Obtener orden por ID con sus líneas
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        page         query  int     false  "Página (desde 1)"  default(1)
// @Param        per_page     query  int     false  "Tamaño de página"  default(20)
// @Param        status       query  string  false  "Estado de la orden"
// @Param        supplier_id  query  string  false  "Proveedor"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/purchase-orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "query inválida")
	}
	filter := repository.OrderFilter{
		Status:     c.Query("status"),
		SupplierID: c.Query("supplier_id"),
	}
	out, err := h.uc.List(filter, page)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden (líneas solo en DRAFT o PENDING)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar borrador a aprobación (DRAFT → PENDING)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/submit [post]
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.Context(), c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar orden (PENDING → APPROVED, requiere manager o admin)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/approve [post]
func (h *OrderHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// MarkOrdered godoc
// @Summary      Marcar orden colocada con el proveedor (APPROVED → ORDERED)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/order [post]
func (h *OrderHandler) MarkOrdered(c *fiber.Ctx) error {
	out, err := h.uc.MarkOrdered(c.Context(), c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// MarkShipped godoc
// @Summary      Marcar orden despachada (ORDERED → SHIPPED)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/ship [post]
func (h *OrderHandler) MarkShipped(c *fiber.Ctx) error {
	out, err := h.uc.MarkShipped(c.Context(), c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar orden (desde cualquier estado no terminal)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir mercancía (parcial o total)
// @Description  Valida todo el lote antes de tocar stock: una línea inválida
// @Description  rechaza la recepción completa. La recepción total cierra la
// @Description  orden y actualiza las métricas del proveedor.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ReceiveOrderRequest  true  "Cantidades recibidas por línea"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *OrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Receive(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// GetTracking godoc
// @Summary      Tracking de envío de una orden
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/tracking [get]
func (h *OrderHandler) GetTracking(c *fiber.Ctx) error {
	out, err := h.uc.GetTracking(c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// UpdateTracking godoc
// @Summary      Actualizar tracking manualmente (el estado solo avanza)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateDeliveryRequest  true  "Actualización del envío"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/tracking [put]
func (h *OrderHandler) UpdateTracking(c *fiber.Ctx) error {
	var in dto.UpdateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateTracking(c.Context(), c.Params("id"), in)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// CarrierFeed godoc
// @Summary      Ingerir feed XML de la transportadora
// @Description  Acepta el XML crudo del feed, lo normaliza y aplica los
// @Description  escaneos en orden cronológico. Re-ingerir el mismo feed es idempotente.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       xml
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/tracking/carrier-feed [post]
func (h *OrderHandler) CarrierFeed(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return badRequest(c, "INVALID_BODY", "se espera el XML del feed en el cuerpo")
	}
	feed, err := h.feedParser.ParseFeed(body)
	if err != nil {
		return RespondError(c, err)
	}
	out, err := h.uc.ApplyCarrierFeed(c.Context(), c.Params("id"), feed)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar la orden de compra en PDF
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/pdf [get]
func (h *OrderHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadOrderPDF(c.Context(), c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// OrderSummary godoc
// @Summary      Resumen de órdenes (pendientes, en tránsito, valores)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderSummaryResponse
// @Router       /api/purchase-orders/summary/orders [get]
func (h *OrderHandler) OrderSummary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}

// DeliverySummary godoc
// @Summary      Resumen de envíos (en tránsito, entregados hoy, demorados)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DeliveryMetricsResponse
// @Router       /api/purchase-orders/summary/deliveries [get]
func (h *OrderHandler) DeliverySummary(c *fiber.Ctx) error {
	out, err := h.uc.DeliverySummary(c.Context())
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(out)
}
