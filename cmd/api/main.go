package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"filehub/internal/auth"
	"filehub/internal/config"
	"filehub/internal/database"
	"filehub/internal/database/migration"
	handlers "filehub/internal/http/handler"
	"filehub/internal/http/middleware"
	"filehub/internal/model"
	"filehub/internal/otel"
	"filehub/internal/repository/postgres"
	"filehub/internal/service"
	"filehub/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Repositories and services
	accountRepo := postgres.NewAccountPostgres(db)
	departmentRepo := postgres.NewDepartmentPostgres(db)
	fileRepo := postgres.NewFilePostgres(db)

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authSvc := service.NewAuthService(accountRepo, tokens)
	accSvc := service.NewAccountService(accountRepo, departmentRepo)
	deptSvc := service.NewDepartmentService(departmentRepo, accountRepo)
	fileSvc := service.NewFileService(objStore, fileRepo, cfg.Auth.PresignExpiry)

	if err := bootstrapAdmin(ctx, cfg.Auth, accSvc); err != nil {
		log.Fatalf("failed to bootstrap admin account: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMw, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Global middleware: request IDs first so the logger can pick them up.
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(promMw.Handler())
	app.Use(otelfiber.Middleware())

	handlers.RegisterRoutes(app, db, authSvc, accSvc, deptSvc, fileSvc)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// bootstrapAdmin seeds the initial ADMIN account so a fresh deployment has a
// way to obtain the first token. It is a no-op when the credentials are unset
// or the username already exists.
func bootstrapAdmin(ctx context.Context, cfg config.AuthConfig, accSvc service.AccountService) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := accSvc.Create(ctx, cfg.AdminUsername, cfg.AdminPassword, model.RoleAdmin, nil)
	if errors.Is(err, service.ErrUsernameTaken) {
		return nil
	}
	return err
}
