package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "agency-forms/docs"
	common_api "agency-forms/internal/common/api"
	"agency-forms/internal/config"
	"agency-forms/internal/database"
	"agency-forms/internal/features/audit"
	"agency-forms/internal/features/email"
	"agency-forms/internal/features/export"
	"agency-forms/internal/features/form"
	"agency-forms/internal/features/policy"
	"agency-forms/internal/features/processor"
	"agency-forms/internal/features/submission"
	"agency-forms/internal/features/system"
	"agency-forms/internal/features/webhook"
	"agency-forms/internal/logger"
	"agency-forms/internal/middleware"
	"agency-forms/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags the constructor so Fx adds it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes calls Setup() on every member of the "routes" group.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, logger *zap.Logger) {
	logger.Info("Registering routes", zap.Int("count", len(routes)))
	for _, route := range routes {
		logger.Debug("Setting up route", zap.String("type", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer listens on cfg.Port in a goroutine and shuts Fiber down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// InitializeIndexes creates the template, submission and audit indexes in the background.
func InitializeIndexes(lc fx.Lifecycle, templates *form.MongoTemplateRepository, submissions submission.SubmissionRepository, auditRepo audit.AuditRepository, logger *zap.Logger) {
	indexers := map[string]interface{}{
		"templates":   templates,
		"submissions": submissions,
		"audit_logs":  auditRepo,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				for name, repo := range indexers {
					idx, ok := repo.(indexer)
					if !ok {
						continue
					}
					if err := idx.EnsureIndexes(ctx); err != nil {
						logger.Warn("Failed to ensure indexes", zap.String("collection", name), zap.Error(err))
					}
				}
			}()
			return nil
		},
	})
}

// StartProcessor runs the scheduled submission sweep for the lifetime of the app.
func StartProcessor(lc fx.Lifecycle, processorService processor.ProcessorService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return processorService.Start()
		},
		OnStop: func(ctx context.Context) error {
			return processorService.Stop()
		},
	})
}

// @title           Agency Forms API
// @version         1.0
// @description     Dynamic insurance forms with conditional logic and ACORD export.

// @host            localhost:8000
// @BasePath        /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,

			database.NewDatabase,
			database.NewPostgres,
			database.NewRedis,

			// Repositories
			form.NewMongoTemplateRepository,
			form.NewTemplateRepository,
			submission.NewSubmissionRepository,
			policy.NewPolicyRepository,
			audit.NewAuditRepository,
			email.NewEmailRepository,
			webhook.NewDeliveryLogRepository,

			// Services
			audit.NewAuditService,
			webhook.NewWebhookService,
			email.NewEmailService,
			export.NewPDFGenerator,
			form.NewTemplateService,
			submission.NewSubmissionService,
			export.NewExportService,
			processor.NewProcessorService,

			// Controllers
			form.NewTemplateController,
			submission.NewSubmissionController,
			export.NewExportController,
			audit.NewAuditController,
			webhook.NewWebhookController,
			processor.NewProcessorController,
			system.NewHealthController,

			// Routes
			AsRoute(form.NewTemplateApi),
			AsRoute(submission.NewSubmissionApi),
			AsRoute(export.NewExportApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(webhook.NewWebhookApi),
			AsRoute(processor.NewProcessorApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
			RegisterAllRoutesWithAnnotation,
			StartServer,
			StartProcessor,
			InitializeIndexes,
		),
	)

	app.Run()
}
