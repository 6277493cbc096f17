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
	_ "github.com/jhoicas/Acueducto-api/docs"
	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/internal/infrastructure/cache"
	"github.com/jhoicas/Acueducto-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Acueducto-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Acueducto-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Acueducto-api/internal/interfaces/http"
	"github.com/jhoicas/Acueducto-api/pkg/config"
	"github.com/jhoicas/Acueducto-api/pkg/logger"
)

// @title                       Acueducto API
// @version                     1.0
// @description                 API de facturación por bloques del acueducto: tarifas, facturas, pagos y estados de cuenta.
// @host                        localhost:8080
// @BasePath                    /api
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT con el prefijo Bearer.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var txRunner billing.TxRunner
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		txRunner = memory.NewStore()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
	}

	// Caché de tarifas opcional: sin REDIS_ADDR cada consulta va a la base.
	var tierCache billing.TierCache
	if cfg.Redis.Enabled() {
		redisCache, err := cache.NewRedisTierCache(cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		tierCache = redisCache
	}

	rateSvc := billing.NewRateScheduleService(txRunner, tierCache, log)
	ledger := billing.NewPaymentLedger(txRunner, log)
	orchestrator := billing.NewOrchestrator(
		txRunner, billing.NewBillBuilder(cfg.Billing.GraceDays), ledger, log,
		billing.OrchestratorConfig{
			MaxRetries:   cfg.Billing.MaxRetries,
			BatchWorkers: cfg.Billing.BatchWorkers,
		},
	)

	// PDF: representación imprimible de la factura
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.Issuer{
		Name:    cfg.Issuer.Name,
		TaxID:   cfg.Issuer.TaxID,
		Address: cfg.Issuer.Address,
		Phone:   cfg.Issuer.Phone,
	})
	billPDFUC := billing.NewPDFUseCase(txRunner, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Acueducto API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Rates:        rateSvc,
		Orchestrator: orchestrator,
		PDF:          billPDFUC,
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
