package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"research-backend/internal/companies"
	"research-backend/internal/exports"
	"research-backend/internal/llm"
	"research-backend/internal/notes"
	"research-backend/internal/research"
	"research-backend/internal/services/health"
	"research-backend/internal/shared/config"
	"research-backend/internal/shared/server"
	"research-backend/internal/shared/server/middleware"
	"research-backend/internal/shared/server/respond"
	"research-backend/internal/shared/storage/db"
	"research-backend/internal/shared/storage/object"
	localstore "research-backend/internal/shared/storage/object/local"
	s3store "research-backend/internal/shared/storage/object/s3"
	"research-backend/internal/shared/telemetry"
)

// App holds shared dependencies and the configured router.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.ObjectStore
	LLM             llm.Client
	Sessions        *research.SessionStore
	NotesRepo       notes.NotesRepo
	ExportsRepo     exports.ExportsRepo
	ResearchService *research.Service
	NotesService    *notes.Service
	ExportsService  *exports.Service
	HealthService   *health.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	telemetry.Configure(cfg.LogLevel)
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	loc, err := displayLocation(cfg.DisplayTimezone)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		LLM:      llm.MockClient{Delay: cfg.GenerateDelay},
		Sessions: research.NewSessionStore(cfg.SessionTTL),
	}
	buildServices(app)
	app.ExportsService.Location = loc

	app.Router = server.NewRouter(server.RouterDeps{
		Config: app.Config,
		Health: healthHandler(app.HealthService),
		Handlers: []server.RouteRegistrar{
			research.NewHandler(app.ResearchService),
			companies.NewHandler(companies.DefaultCatalog()),
			notes.NewHandler(app.NotesService),
			exports.NewHandler(app.ExportsService),
		},
		Limiter: middleware.NewRateLimiter(nil),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database unavailable", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func displayLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE: %w", err)
	}
	return loc, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.NotesRepo = &notes.PGRepo{DB: app.DB}
		app.ExportsRepo = &exports.PGRepo{DB: app.DB}
	} else {
		app.NotesRepo = notes.NewMemoryRepo()
		app.ExportsRepo = exports.NewMemoryRepo()
	}

	app.ResearchService = &research.Service{LLM: app.LLM, Sessions: app.Sessions}
	app.NotesService = &notes.Service{Repo: app.NotesRepo}
	app.ExportsService = &exports.Service{
		Store:    app.Store,
		Repo:     app.ExportsRepo,
		Notes:    app.NotesService,
		Research: app.ResearchService,
	}
	app.HealthService = health.NewService(app.DB, app.Config.ObjectStoreType)
}

func healthHandler(svc *health.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := svc.Status(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, st)
	}
}
