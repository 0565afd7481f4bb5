package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"swissdamed-migel/internal/config"
	"swissdamed-migel/internal/middleware"
	migelHnd "swissdamed-migel/internal/migel/handler"
	"swissdamed-migel/internal/migel/service"
	"swissdamed-migel/server/http/handlers"
)

func NewRouter(cfg config.Config, m *service.Matcher, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()
	maxBody := int64(cfg.Server.MaxUploadMB) << 20

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.Server.AllowOrigins))
	r.Use(middleware.LimitBytes(maxBody))

	r.Get("/health", handlers.Health)

	r.Get("/catalog", migelHnd.Catalog(m))
	r.Post("/match", migelHnd.Match(m, logger))
	r.Post("/match/file", migelHnd.MatchFile(m, cfg.Migel.Workers, 32<<20, logger))

	return r
}
