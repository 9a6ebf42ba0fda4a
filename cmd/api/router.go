package main

import (
	"context"
	"net/http"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Pinger reports whether the storage backend can serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	cfg     config.ServerConfig
	log     zerolog.Logger
	books   *book.HTTPHandler
	storage Pinger
	limiter *httpx.RateLimiter
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(httpx.RequestIDMiddleware(deps.log))
	// Recovery sits inside the access log so a recovered panic is logged as a 500.
	r.Use(httpx.AccessLogMiddleware)
	r.Use(httpx.RecoveryMiddleware)
	r.Use(httpx.SecurityHeadersMiddleware(deps.cfg.EnableHSTS))
	r.Use(httpx.CORSMiddleware(deps.cfg.CORSAllowedOrigins))
	if deps.limiter != nil {
		r.Use(deps.limiter.Middleware)
	}
	r.Use(httpx.RequestSizeLimitMiddleware(deps.cfg.MaxBodyBytes))

	r.NotFound(httpx.NotFound)
	r.MethodNotAllowed(httpx.MethodNotAllowed)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := deps.storage.Ping(ctx); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("storage not ready")
			httpx.JSONError(w, r, http.StatusServiceUnavailable, httpx.CodeUnavailable, "Storage not ready", nil)
			return
		}
		httpx.JSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
	})

	deps.books.Routes(r)

	return r
}
