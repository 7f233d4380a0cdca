package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vertragswerk/contracts-api/internal/application/usecase"
	"github.com/vertragswerk/contracts-api/internal/domain/repository"
	infraexcel "github.com/vertragswerk/contracts-api/internal/infrastructure/excel"
	"github.com/vertragswerk/contracts-api/internal/infrastructure/erpxml"
	"github.com/vertragswerk/contracts-api/internal/infrastructure/memory"
	infrapdf "github.com/vertragswerk/contracts-api/internal/infrastructure/pdf"
	"github.com/vertragswerk/contracts-api/internal/infrastructure/postgres"
	httpRouter "github.com/vertragswerk/contracts-api/internal/interfaces/http"
	"github.com/vertragswerk/contracts-api/pkg/config"
	"github.com/vertragswerk/contracts-api/pkg/logger"
)

// repos bündelt die Ports für die Verdrahtung beider Treiber.
type repos struct {
	contracts  repository.ContractRepository
	customers  repository.CustomerRepository
	mandants   repository.MandantRepository
	groups     repository.ContractGroupRepository
	currencies repository.CurrencyRepository
	priceTypes repository.PriceTypeRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("konfiguration laden: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("anwendung startet")

	ctx := context.Background()

	var r repos
	switch cfg.DB.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("verbindung zu PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool, cfg.Contracts.Seed); err != nil {
			log.Fatal().Err(err).Msg("schema migrieren")
		}
		txRunner := postgres.NewTxRunner(pool)
		r = repos{
			contracts:  postgres.NewContractRepository(pool, txRunner),
			customers:  postgres.NewCustomerRepository(pool),
			mandants:   postgres.NewMandantRepository(pool),
			groups:     postgres.NewContractGroupRepository(pool),
			currencies: postgres.NewCurrencyRepository(pool),
			priceTypes: postgres.NewPriceTypeRepository(pool),
		}
	default:
		store := memory.NewStore()
		if cfg.Contracts.Seed {
			store.Seed()
		}
		r = repos{
			contracts:  memory.NewContractRepository(store),
			customers:  memory.NewCustomerRepository(store),
			mandants:   memory.NewMandantRepository(store),
			groups:     memory.NewContractGroupRepository(store),
			currencies: memory.NewCurrencyRepository(store),
			priceTypes: memory.NewPriceTypeRepository(store),
		}
	}

	validator := usecase.NewContractValidator(
		r.contracts, r.customers, r.mandants, r.groups, r.currencies, r.priceTypes,
		usecase.ValidationRules{
			DateRange:    cfg.Contracts.ValidateDateRange,
			PriceOverlap: cfg.Contracts.ValidatePriceOverlap,
		},
	)
	contractUC := usecase.NewContractUseCase(r.contracts, validator, usecase.PageDefaults{
		Default: cfg.Contracts.DefaultPageSize,
		Max:     cfg.Contracts.MaxPageSize,
	})
	lookupUC := usecase.NewLookupUseCase(r.customers, r.mandants, r.groups, r.currencies, r.priceTypes)
	exportUC := usecase.NewExportUseCase(
		r.contracts,
		infrapdf.NewContractPDFGenerator(),
		infraexcel.NewContractExcelGenerator(),
		erpxml.NewContractXMLBuilder(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI lokal: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vertragswerk API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ContractUC: contractUC,
		LookupUC:   lookupUC,
		ExportUC:   exportUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP-Server beendet")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown-signal empfangen, server wird beendet...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server-shutdown")
	}

	log.Info().Msg("anwendung beendet")
}
