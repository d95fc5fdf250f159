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

	_ "github.com/jhoicas/inventario-turnos/docs"
	"github.com/jhoicas/inventario-turnos/internal/application/auth"
	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
	"github.com/jhoicas/inventario-turnos/internal/application/usecase"
	"github.com/jhoicas/inventario-turnos/internal/infrastructure/kv"
	"github.com/jhoicas/inventario-turnos/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/inventario-turnos/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-turnos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-turnos/internal/interfaces/http"
	"github.com/jhoicas/inventario-turnos/pkg/config"
	"github.com/jhoicas/inventario-turnos/pkg/logger"
)

// @title                       Inventario Turnos API
// @version                     1.0
// @description                 Catálogo, libro de turno por caja y cierre de turno.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:      cfg.App.Env,
		Level:    cfg.App.LogLevel,
		DeviceID: cfg.Shift.DeviceID,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("shift_store", cfg.Shift.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	shiftReportRepo := postgres.NewShiftReportRepository(pool)

	// Libro de turno: Redis en producción, memoria para desarrollo sin Redis.
	var store appshift.KVStore
	var ledgerOpts []appshift.LedgerOption
	switch cfg.Shift.Store {
	case config.ShiftStoreMemory:
		log.Warn().Msg("libro de turno en memoria: se pierde al reiniciar")
		store = kv.NewMemoryStore(cfg.Shift.KeyPrefix)
	default:
		rdb, err := kv.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer func() { _ = rdb.Close() }()
		store = kv.NewRedisStore(rdb, cfg.Shift.KeyPrefix)
		// Varias instancias pueden compartir el libro: el lock vive en Redis.
		ledgerOpts = append(ledgerOpts, appshift.WithLocker(kv.NewRedisLocker(rdb, cfg.Shift.KeyPrefix)))
	}

	catalog := appshift.NewBestEffortCatalog(productRepo, log.Component("catalog_sync"), appshift.CatalogOptions{
		Async:   cfg.Shift.CatalogAsync,
		Timeout: time.Duration(cfg.Shift.CatalogTimeout) * time.Second,
	})
	ledger := appshift.NewLedger(store, catalog, log.Component("shift_ledger"), ledgerOpts...)

	reporters := []appshift.ShiftReporter{shiftReportRepo}
	if pub := messaging.NewShiftPublisher(cfg.AMQP, log.Component("amqp")); pub != nil {
		reporters = append(reporters, pub)
	}
	agg := appshift.NewAggregator(ledger, kv.NewHistoryStore(store), log.Component("shift_aggregator"),
		appshift.WithDeviceID(cfg.Shift.DeviceID),
		appshift.WithReporters(reporters...),
	)

	// PDF: resumen de turno exportable
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	shiftUC := appshift.NewUseCase(productRepo, ledger, agg, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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
		Title:    "Inventario Turnos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":           "ok",
			"service":          cfg.App.Name,
			"device_id":        cfg.Shift.DeviceID,
			"catalog_failures": catalog.Failures(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(userRepo),
		ProductUC:     usecase.NewProductUseCase(productRepo),
		ShiftUC:       shiftUC,
		ShiftReportUC: usecase.NewShiftReportUseCase(shiftReportRepo),
		JWTSecret:     cfg.JWT.Secret,
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
	catalog.Wait()

	log.Info().Int64("catalog_failures", catalog.Failures()).Msg("aplicación detenida")
}
