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
	"github.com/stockmaster/stockmaster-pro/internal/application/analytics"
	"github.com/stockmaster/stockmaster-pro/internal/application/auth"
	"github.com/stockmaster/stockmaster-pro/internal/application/ledger"
	"github.com/stockmaster/stockmaster-pro/internal/application/usecase"
	infracache "github.com/stockmaster/stockmaster-pro/internal/infrastructure/cache"
	infrapdf "github.com/stockmaster/stockmaster-pro/internal/infrastructure/pdf"
	"github.com/stockmaster/stockmaster-pro/internal/infrastructure/postgres"
	httpRouter "github.com/stockmaster/stockmaster-pro/internal/interfaces/http"
	"github.com/stockmaster/stockmaster-pro/pkg/config"
	"github.com/stockmaster/stockmaster-pro/pkg/logger"
)

const appVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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
	categoryRepo := postgres.NewCategoryRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache Redis opcional: REDIS_ADDR vacío desactiva el cache del dashboard.
	var dashCache analytics.Cache
	if cfg.Redis.Addr != "" {
		redisClient, err := infracache.NewRedisClient(cfg.Redis.Addr)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		dashCache = redisClient
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache Redis habilitado")
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	receiptUC := ledger.NewReceiptUseCase(txRunner, receiptRepo, supplierRepo, productRepo, locationRepo)
	deliveryUC := ledger.NewDeliveryUseCase(txRunner, deliveryRepo, productRepo, locationRepo, pdfGenerator)
	transferUC := ledger.NewTransferUseCase(txRunner, transferRepo, productRepo, locationRepo)
	adjustmentUC := ledger.NewAdjustmentUseCase(txRunner, adjustmentRepo, productRepo, locationRepo)
	dashboardUC := analytics.NewDashboardUseCase(statsRepo, dashCache, log)
	settingsUC := usecase.NewSettingsUseCase(cfg.App.Name, appVersion)

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
		Title:    "StockMaster Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		CategoryUC:   categoryUC,
		LocationUC:   locationUC,
		SupplierUC:   supplierUC,
		ReceiptUC:    receiptUC,
		DeliveryUC:   deliveryUC,
		TransferUC:   transferUC,
		AdjustmentUC: adjustmentUC,
		DashboardUC:  dashboardUC,
		SettingsUC:   settingsUC,
		JWTSecret:    cfg.JWT.Secret,
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
