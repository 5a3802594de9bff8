package main

import (
	"context"
	"flag"
	"time"

	"agency-forms/internal/config"
	"agency-forms/internal/database"
	"agency-forms/internal/features/audit"
	"agency-forms/internal/features/form"
	"agency-forms/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var templateName = flag.String("name", form.MasterTemplateName, "name of the master template to seed")

// Seed creates the master insurance template unless one with the same name already exists.
func Seed(
	lc fx.Lifecycle,
	store *form.MongoTemplateRepository,
	templateService form.TemplateService,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()

				logger.Info("Seeding master template", zap.String("name", *templateName))

				if err := store.EnsureIndexes(ctx); err != nil {
					logger.Warn("Failed to ensure template indexes", zap.Error(err))
				}

				existing, err := templateService.ListTemplates(ctx, form.ListFilter{})
				if err != nil {
					logger.Error("Failed to list templates", zap.Error(err))
					return
				}
				for _, t := range existing {
					if t.Name == *templateName {
						logger.Info("Template exists, skipping", zap.String("template_id", t.ID.Hex()))
						return
					}
				}

				tmpl, err := templateService.BuildMasterTemplate(ctx, *templateName)
				if err != nil {
					logger.Error("Failed to seed master template", zap.Error(err))
					return
				}
				logger.Info("Seeding completed",
					zap.String("template_id", tmpl.ID.Hex()),
					zap.Int("sections", len(tmpl.Sections)),
				)
			}()
			return nil
		},
	})
}

func main() {
	flag.Parse()

	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,

			form.NewMongoTemplateRepository,
			func(store *form.MongoTemplateRepository) form.TemplateRepository { return store },
			audit.NewAuditRepository,
			audit.NewAuditService,
			form.NewTemplateService,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
