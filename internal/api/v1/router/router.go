package router

import (
	"context"
	"net/http"
	"strings"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initializing")

	// 1. Open DB connection pool
	pool, err := repository.NewPool(context.Background(), cfg.DBConnectionString, cfg.Environment)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	// 2. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 3. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(pool)
	usageRepo := repository.NewUsageRepo()
	artifactRepo := repository.NewArtifactRepo(pool)
	generationStore := repository.NewGenerationStore(pool, usageRepo, artifactRepo)

	var generator service.SermonGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = service.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		logger.Warn().Msg("OPENAI_API_KEY not set; all outlines will use the fallback template")
	}

	accessSvc := service.NewAccessService(artifactRepo)
	sermonSvc := service.NewSermonService(userRepo, generationStore, accessSvc, generator, logger)
	shareSvc := service.NewShareService(accessSvc, artifactRepo, cfg.ShareBaseURL)
	exportSvc := service.NewExportService(accessSvc)

	sermonHandler := handler.NewSermonHandler(sermonSvc, validate, logger)
	exportHandler := handler.NewExportHandler(exportSvc, logger)
	shareHandler := handler.NewShareHandler(shareSvc, accessSvc, logger)
	configHandler := handler.NewConfigHandler(cfg)
	webhookHandler := handler.NewWebhookHandler(cfg.StripeWebhookSecret, logger)

	// 4. Create ServeMux router
	apiV1Mux := http.NewServeMux()
	sermonHandler.RegisterRoutes(apiV1Mux, middleware.IdentityMiddleware)
	exportHandler.RegisterRoutes(apiV1Mux, middleware.IdentityMiddleware)
	shareHandler.RegisterRoutes(apiV1Mux, middleware.IdentityMiddleware)
	configHandler.RegisterRoutes(apiV1Mux)
	webhookHandler.RegisterRoutes(apiV1Mux)

	mux := http.NewServeMux()

	// Mount the API v1 routes under /v1
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	// Redirect /api/* to /v1/* for backward compatibility
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/")
		http.Redirect(w, r, "/v1/"+rest, http.StatusMovedPermanently)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	// 5. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), pool, nil
}
