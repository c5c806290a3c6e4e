package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"rp_market/pkg/httpx/reply"
	"rp_market/pkg/logx"
	"rp_market/pkg/middlewarex"
)

var endpoints = []string{"/catalog", "/snapshot", "/quote", "/trade"} //nolint:gochecknoglobals

type RouterOptions struct {
	BasePath            string
	Registerer          prometheus.Registerer
	SensitiveDataMasker logx.SensitiveDataMaskerInterface
	LogFieldMaxLen      int
}

// NewRouter собирает цепочку middleware и монтирует маршруты под BasePath.
func NewRouter(s Server, opts RouterOptions) http.Handler {
	if opts.SensitiveDataMasker == nil {
		opts.SensitiveDataMasker = logx.NewNopSensitiveDataMasker()
	}

	if opts.Registerer == nil {
		opts.Registerer = prometheus.NewRegistry()
	}

	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.UserID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.Metrics(opts.Registerer),
		middlewarex.RequestLogging(opts.SensitiveDataMasker, opts.LogFieldMaxLen),
		middlewarex.ResponseLogging(opts.SensitiveDataMasker, opts.LogFieldMaxLen),
	)

	r.Route(basePath(opts.BasePath), s.RegisterRoutes)

	return r
}

func (s Server) RegisterRoutes(r chi.Router) {
	r.Get("/", handler(s.getRoot))
	r.Get("/catalog", handler(s.getCatalog))
	r.Get("/snapshot", handler(s.getSnapshot))

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter)
		}

		r.Post("/quote", handler(s.postQuote))
		r.Post("/trade", handler(s.postTrade))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}

func basePath(p string) string {
	p = "/" + strings.Trim(p, "/")
	return p
}
