package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Camilo196/Vendly/internal/application/auth"
	"github.com/Camilo196/Vendly/internal/application/commissions"
	"github.com/Camilo196/Vendly/internal/application/employees"
	"github.com/Camilo196/Vendly/internal/application/ports"
	"github.com/Camilo196/Vendly/internal/application/products"
	"github.com/Camilo196/Vendly/internal/application/purchases"
	"github.com/Camilo196/Vendly/internal/application/reports"
	"github.com/Camilo196/Vendly/internal/application/sales"
	"github.com/Camilo196/Vendly/internal/application/services"
	"github.com/Camilo196/Vendly/internal/infrastructure/cache"
	"github.com/Camilo196/Vendly/internal/infrastructure/postgres"
	httpRouter "github.com/Camilo196/Vendly/internal/interfaces/http"
	"github.com/Camilo196/Vendly/pkg/config"
	"github.com/Camilo196/Vendly/pkg/logger"
)

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
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	commissionRepo := postgres.NewCommissionRepository(pool)
	serviceRepo := postgres.NewTechnicalServiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de reportes: Redis si está configurado, si no un cache nulo.
	var reportCache ports.ReportCache = cache.NewNoop()
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, reportes sin cache")
		} else {
			defer rc.Close()
			reportCache = rc
		}
	}

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := products.NewUseCase(txRunner, productRepo)
	purchaseUC := purchases.NewUseCase(txRunner, purchaseRepo, productRepo)
	saleUC := sales.NewUseCase(txRunner, saleRepo, productRepo, employeeRepo, commissionRepo, log)
	employeeUC := employees.NewUseCase(employeeRepo)
	commissionUC := commissions.NewUseCase(txRunner, commissionRepo, employeeRepo)
	serviceUC := services.NewUseCase(txRunner, serviceRepo, employeeRepo)
	reportUC := reports.NewUseCase(saleRepo, purchaseRepo, productRepo, serviceRepo, commissionRepo, reportCache, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		PurchaseUC:   purchaseUC,
		SaleUC:       saleUC,
		EmployeeUC:   employeeUC,
		CommissionUC: commissionUC,
		ServiceUC:    serviceUC,
		ReportUC:     reportUC,
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
