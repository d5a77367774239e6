package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/tu-usuario/supermarket-pro/internal/application/analytics"
	appauth "github.com/tu-usuario/supermarket-pro/internal/application/auth"
	appinventory "github.com/tu-usuario/supermarket-pro/internal/application/inventory"
	appproduct "github.com/tu-usuario/supermarket-pro/internal/application/product"
	"github.com/tu-usuario/supermarket-pro/internal/application/purchasing"
	appsupplier "github.com/tu-usuario/supermarket-pro/internal/application/supplier"
	"github.com/tu-usuario/supermarket-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *appproduct.UseCase
	ReorderUC   *appinventory.ReorderUseCase
	SupplierUC  *appsupplier.UseCase
	OrderUC     *purchasing.UseCase
	OrderPDFUC  *purchasing.PDFUseCase
	FeedParser  purchasing.FeedParser
	DashboardUC *appanalytics.DashboardUseCase
	AuthUC      *appauth.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido). Las rutas fijas van antes de /:id.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/adjust-stock", productHandler.AdjustStock)
	products.Get("/:id/adjustments", productHandler.Adjustments)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ReorderUC)
	invGroup.Get("/reorder-suggestions", inventoryHandler.ReorderSuggestions)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Purchase orders (protegido)
	orders := protected.Group("/purchase-orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderPDFUC, deps.FeedParser)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/summary/orders", orderHandler.OrderSummary)
	orders.Get("/summary/deliveries", orderHandler.DeliverySummary)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Post("/:id/submit", orderHandler.Submit)
	orders.Post("/:id/approve", RequireRole(entity.RoleManager, entity.RoleAdmin), orderHandler.Approve)
	orders.Post("/:id/order", orderHandler.MarkOrdered)
	orders.Post("/:id/ship", orderHandler.MarkShipped)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Post("/:id/receive", orderHandler.Receive)
	orders.Get("/:id/tracking", orderHandler.GetTracking)
	orders.Put("/:id/tracking", orderHandler.UpdateTracking)
	orders.Post("/:id/tracking/carrier-feed", orderHandler.CarrierFeed)
	orders.Get("/:id/pdf", orderHandler.DownloadPDF)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/metrics", dashboardHandler.GetMetrics)
	dashboard.Get("/low-stock", dashboardHandler.GetLowStock)
}
