package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/tu-usuario/supermarket-pro/internal/application/analytics"
	appauth "github.com/tu-usuario/supermarket-pro/internal/application/auth"
	appinventory "github.com/tu-usuario/supermarket-pro/internal/application/inventory"
	appproduct "github.com/tu-usuario/supermarket-pro/internal/application/product"
	"github.com/tu-usuario/supermarket-pro/internal/application/purchasing"
	appsupplier "github.com/tu-usuario/supermarket-pro/internal/application/supplier"
	infracarrier "github.com/tu-usuario/supermarket-pro/internal/infrastructure/carrier"
	infrapdf "github.com/tu-usuario/supermarket-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/supermarket-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/supermarket-pro/internal/interfaces/http"
	"github.com/tu-usuario/supermarket-pro/pkg/config"
	"github.com/tu-usuario/supermarket-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	metricsRepo := postgres.NewMetricsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := appproduct.NewUseCase(productRepo, adjustmentRepo, txRunner)
	reorderUC := appinventory.NewReorderUseCase(productRepo, supplierRepo)
	supplierUC := appsupplier.NewUseCase(supplierRepo)
	orderUC := purchasing.NewUseCase(
		orderRepo, productRepo, supplierRepo, deliveryRepo, metricsRepo,
		txRunner, purchasing.Config{
			TaxRate:         cfg.Purchasing.TaxRate,
			OrderPrefix:     cfg.Purchasing.OrderPrefix,
			DeliveryAddress: cfg.Purchasing.DeliveryAddress,
		},
	)

	// PDF: orden de compra imprimible para enviar al proveedor
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	orderPDFUC := purchasing.NewPDFUseCase(orderRepo, supplierRepo, pdfGenerator)

	dashboardUC := appanalytics.NewDashboardUseCase(metricsRepo)
	authUC := appauth.NewUseCase(userRepo, appauth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Supermarket Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		ReorderUC:   reorderUC,
		SupplierUC:  supplierUC,
		OrderUC:     orderUC,
		OrderPDFUC:  orderPDFUC,
		FeedParser:  infracarrier.NewXMLFeedParser(),
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
