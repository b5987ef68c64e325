package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet-management/internal/allowance"
	"fleet-management/internal/api"
	"fleet-management/internal/config"
	"fleet-management/internal/database"
	"fleet-management/internal/modules/company"
	"fleet-management/internal/modules/dashboard"
	"fleet-management/internal/modules/driver"
	"fleet-management/internal/modules/fixedtrip"
	"fleet-management/internal/modules/fleet"
	"fleet-management/internal/modules/floatingtrip"
	"fleet-management/internal/modules/payment"
	"fleet-management/internal/modules/report"
	"fleet-management/internal/modules/route"
	"fleet-management/internal/modules/user"
	"fleet-management/internal/modules/vehicle"
	"fleet-management/pkg/cache"
	"fleet-management/pkg/email"
	"fleet-management/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// 1. --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	ctx := context.Background()

	// 2. --- Database Connection ---
	if cfg.MigrationsAuto {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to parse database configuration: %v", err)
	}
	dbPool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		log.Fatalf("Unable to create connection pool: %v\n", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}
	log.Println("Successfully connected to the database!")

	// 3. --- Optional infrastructure ---
	var store cache.Store = cache.NoopStore{}
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Printf("Redis unavailable, dashboard caching disabled: %v", err)
		} else {
			defer client.Close()
			store = cache.NewRedisStore(client, "fleet")
		}
	}

	var sender email.ServiceInterface
	var templates *email.TemplateManager
	if cfg.EmailFrom != "" {
		switch cfg.EmailProvider {
		case "smtp":
			sender = email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
		default:
			ses, err := email.NewSESV2Sender(ctx, cfg.AWSRegion, cfg.EmailFrom)
			if err != nil {
				log.Fatalf("Failed to configure SES: %v", err)
			}
			sender = ses
		}
		if templates, err = email.NewTemplateManager(); err != nil {
			log.Fatalf("Failed to parse email templates: %v", err)
		}
	}

	// 4. --- Dependency Injection ---
	userService := user.NewService(user.NewRepository(dbPool), cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	if created, err := userService.EnsureAdmin(ctx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	} else if created {
		log.Printf("Created bootstrap admin account %q", cfg.BootstrapAdminUsername)
	}

	driverService := driver.NewService(driver.NewRepository(dbPool), store)
	vehicleService := vehicle.NewService(vehicle.NewRepository(dbPool), store)
	routeService := route.NewService(route.NewRepository(dbPool), store)
	companyService := company.NewService(company.NewRepository(dbPool))
	checker := fleet.NewChecker(driverService, vehicleService, routeService)
	calc := allowance.NewCalculator(cfg.AllowancePolicy())
	dashboardTTL := time.Duration(cfg.DashboardCacheTTLSeconds) * time.Second

	handlers := api.Handlers{
		User:         user.NewHandler(userService),
		Driver:       driver.NewHandler(driverService),
		Vehicle:      vehicle.NewHandler(vehicleService),
		Route:        route.NewHandler(routeService),
		FixedTrip:    fixedtrip.NewHandler(fixedtrip.NewService(fixedtrip.NewRepository(dbPool), checker, store)),
		FloatingTrip: floatingtrip.NewHandler(floatingtrip.NewService(floatingtrip.NewRepository(dbPool), calc, checker, store)),
		Payment:      payment.NewHandler(payment.NewService(payment.NewRepository(dbPool), checker, store)),
		Report:       report.NewHandler(report.NewService(report.NewRepository(dbPool), checker, companyService, sender, templates)),
		Company:      company.NewHandler(companyService),
		Dashboard:    dashboard.NewHandler(dashboard.NewService(dashboard.NewRepository(dbPool), store, dashboardTTL)),
	}

	// 5. --- HTTP Server ---
	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.GetValidator()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"http://localhost:5173", cfg.ClientOrigin},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))

	api.SetupRoutes(e, handlers, cfg.JWTSecret, cfg.LoginRatePerMinute)

	// 6. --- Start Server with graceful shutdown logic ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server an error occurred:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exiting")
}
