package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/documents"
	"resume-builder/internal/exports"
	"resume-builder/internal/llm"
	openai "resume-builder/internal/llm/openai"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/cache"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/suggestions"
	"resume-builder/resume/document"
	"resume-builder/resume/export"
	"resume-builder/resume/importer"
)

const cachePrefix = "resume-builder:"

// App holds shared dependencies and the HTTP router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Cache  cache.Cache
	LLM    llm.Completer

	ResumesService     *resumes.Service
	DocumentsService   *documents.Service
	ExportsService     *exports.Service
	SuggestionsService *suggestions.Service
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	completer, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Cache:  cache.Open(ctx, cfg.RedisURL, cachePrefix),
		LLM:    completer,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config: app.Config,
		Handlers: []server.RouteRegistrar{
			resumes.NewHandler(app.ResumesService),
			exports.NewHandler(app.ExportsService),
			documents.NewHandler(app.DocumentsService, cfg.MaxUploadSize),
			suggestions.NewHandler(app.SuggestionsService),
		},
		Health: buildHealth(app),
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

	sqlDB, err := db.GetSingleton(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database unavailable", "error": err})
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

func buildLLM(cfg config.Config) (llm.Completer, error) {
	switch cfg.LLMProvider {
	case "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return llm.PlaceholderClient{}, nil
	}
}

func buildServices(app *App) {
	var (
		resumeRepo resumes.Repo
		docRepo    documents.Repo
		exportRepo exports.Repo
	)
	if app.DB != nil {
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		docRepo = &documents.PGRepo{DB: app.DB}
		exportRepo = &exports.PGRepo{DB: app.DB}
	} else {
		resumeRepo = resumes.NewMemoryRepo()
		docRepo = documents.NewMemoryRepo()
		exportRepo = exports.NewMemoryRepo()
	}

	ids := document.UUIDGenerator{}
	app.ResumesService = &resumes.Service{Repo: resumeRepo, IDs: ids}
	app.DocumentsService = &documents.Service{
		Store: app.Store,
		Repo:  docRepo,
		Importer: &importer.LLMImporter{
			LLM:      app.LLM,
			Fallback: importer.NewHeuristic(ids),
			IDs:      ids,
		},
		IDs: ids,
	}
	app.ExportsService = &exports.Service{
		Resumes:   app.ResumesService,
		Repo:      exportRepo,
		Store:     app.Store,
		Cache:     app.Cache,
		Exporters: export.Registry(app.Config.ChromePDF),
	}
	app.SuggestionsService = &suggestions.Service{LLM: app.LLM, Cache: app.Cache, Resumes: app.ResumesService}
}

func buildHealth(app *App) *health.Service {
	cacheKind := "memory"
	if _, ok := app.Cache.(*cache.Redis); ok {
		cacheKind = "redis"
	}
	if app.DB == nil {
		return health.NewService(nil, cacheKind)
	}
	return health.NewService(app.DB, cacheKind)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
