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

	"github.com/jhoicas/Taller-api/internal/application/disposal"
	"github.com/jhoicas/Taller-api/internal/application/fabrication"
	"github.com/jhoicas/Taller-api/internal/application/installation"
	"github.com/jhoicas/Taller-api/internal/application/issuance"
	"github.com/jhoicas/Taller-api/internal/application/ledger"
	"github.com/jhoicas/Taller-api/internal/application/procurement"
	"github.com/jhoicas/Taller-api/internal/application/returns"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	infraevents "github.com/jhoicas/Taller-api/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/Taller-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Taller-api/internal/interfaces/http"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	// Repos atados al pool: lecturas y escrituras simples fuera de transacción.
	productRepo := postgres.NewProductRepository(pool)
	historyRepo := postgres.NewStockHistoryRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	toolRepo := postgres.NewToolRepository(pool)
	issuanceRepo := postgres.NewIssuanceRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	jobOrderRepo := postgres.NewJobOrderRepository(pool)
	installationRepo := postgres.NewInstallationRepository(pool)
	disposalRepo := postgres.NewDisposalRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	publisher := infraevents.NewLogPublisher(log.Component("activity-feed"))

	ledgerSvc := ledger.NewService(txRunner, productRepo, historyRepo, publisher)
	productUC := usecase.NewProductUseCase(txRunner, productRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	toolUC := usecase.NewToolUseCase(toolRepo)

	issuanceUC := issuance.NewUseCase(txRunner, issuanceRepo, clientRepo, publisher)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.WorkshopName)
	issuancePDFUC := issuance.NewPDFUseCase(issuanceRepo, clientRepo, productRepo, pdfGenerator)

	returnUC := returns.NewUseCase(txRunner, returnRepo, issuanceRepo, productRepo, publisher)
	procurementUC := procurement.NewUseCase(txRunner, poRepo, supplierRepo, productRepo, publisher)
	fabricationUC := fabrication.NewUseCase(txRunner, jobOrderRepo, clientRepo, productRepo)
	installationUC := installation.NewUseCase(txRunner, installationRepo, publisher)
	disposalUC := disposal.NewUseCase(txRunner, disposalRepo, toolRepo, publisher)

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
		Title:    "Taller Ops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		ClientUC:       clientUC,
		SupplierUC:     supplierUC,
		ToolUC:         toolUC,
		Ledger:         ledgerSvc,
		IssuanceUC:     issuanceUC,
		IssuancePDF:    issuancePDFUC,
		ReturnUC:       returnUC,
		ProcurementUC:  procurementUC,
		FabricationUC:  fabricationUC,
		InstallationUC: installationUC,
		DisposalUC:     disposalUC,
		JWTSecret:      cfg.JWT.Secret,
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
