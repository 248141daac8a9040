package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"resume-quality/internal/analyses"
	"resume-quality/internal/services/health"
	"resume-quality/internal/shared/config"
	"resume-quality/internal/shared/storage/db"
	"resume-quality/internal/shared/telemetry"
	"resume-quality/internal/workflows"
)

// App holds shared dependencies for the HTTP server.
type App struct {
	Config           config.Config
	DB               *sql.DB
	WorkflowRepo     workflows.Repo
	AnalysesService  *analyses.Service
	WorkflowsService *workflows.Service
	AnalysesHandler  *analyses.Handler
	WorkflowsHandler *workflows.Handler
	Health           *health.Service
}

// Build prepares shared dependencies. Without DATABASE_URL workflows live in memory.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	if sqlDB != nil {
		app.WorkflowRepo = &workflows.PGRepo{DB: sqlDB}
	} else {
		app.WorkflowRepo = workflows.NewMemoryRepo()
	}

	app.AnalysesService = analyses.NewService(cfg.QualityThreshold, cfg.MaxDocumentBytes, cfg.BatchConcurrency)
	app.WorkflowsService = workflows.NewService(app.WorkflowRepo)
	app.AnalysesHandler = analyses.NewHandler(app.AnalysesService)
	app.WorkflowsHandler = workflows.NewHandler(app.WorkflowsService)
	app.Health = health.NewService(sqlDB)

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":       cfg.Env,
		"storage":   storageKind(sqlDB),
		"threshold": cfg.QualityThreshold,
	})
	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("DATABASE_URL is required in production")
		}
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db_unavailable", map[string]any{"err": err, "fallback": "memory"})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func storageKind(sqlDB *sql.DB) string {
	if sqlDB == nil {
		return "memory"
	}
	return "postgres"
}
