package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"wordsim/internal/config"
	"wordsim/internal/middleware"
	simHnd "wordsim/internal/similarity/handler"
	"wordsim/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) << 20))

	r.Get("/health", handlers.Health)
	r.Post("/similarity", simHnd.Similarity(cfg, logger))

	return r
}
