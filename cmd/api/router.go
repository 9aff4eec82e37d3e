package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bookcrud/internal/book"
	"bookcrud/internal/config"
	"bookcrud/internal/httpx"
	"bookcrud/internal/store"
)

const readinessTimeout = 500 * time.Millisecond

// newRouter wires the book routes, the probes and the middleware stack.
// The returned func releases background resources held by the middlewares.
func newRouter(db store.DB, cfg config.Config, logger *slog.Logger) (http.Handler, func()) {
	bookRepository := book.NewPostgresRepo(db, cfg.DBTimeout)
	bookService := book.NewService(bookRepository, logger)
	bookHandler := book.NewHTTPHandler(bookService, logger)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			logger.WarnContext(ctx, "readiness check failed", "error", err)
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	bookHandler.Register(router)
	router.Handle("/", httpx.NotFoundHandler())

	middlewares := []httpx.Middleware{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
	}

	cleanup := func() {}
	if cfg.RateLimitRPS > 0 {
		rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
		middlewares = append(middlewares, rateLimiter.Middleware)
		cleanup = rateLimiter.Stop
	}
	middlewares = append(middlewares, httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))

	return httpx.Chain(router, middlewares...), cleanup
}
