package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Anish-Chanda/substring-search/internal/rabin"
)

// zapLoggerAdapter lets chi's request logger write through zap.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (l *zapLoggerAdapter) Print(v ...interface{}) {
	l.logger.Sugar().Info(v...)
}

// NewRouter wires the search API. params are the Rabin-Karp defaults used when
// a request does not override them.
func NewRouter(params rabin.Params, log *zap.Logger) http.Handler {
	h := &Handler{params: params, log: log.Named("api")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  &zapLoggerAdapter{logger: log.Named("http")},
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	r.Get("/health", HealthHandler)
	r.Get("/engines", h.Engines)
	r.Post("/search", h.Search)

	return r
}
