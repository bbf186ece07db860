package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/notify/internal/config"
	"github.com/corray333/backend-labs/notify/internal/service/models/order"
	"github.com/corray333/backend-labs/notify/internal/transport/http/health"
	sendorder "github.com/corray333/backend-labs/notify/internal/transport/http/send_order"
	"github.com/corray333/backend-labs/notify/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/notify/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type service interface {
	SendOrder(ctx context.Context, o order.Order) error
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(cfg config.ServerConfig, service service) *HTTPTransport {
	router := newRouter(cfg)
	server := newServer(cfg, router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Handler returns the router with all middleware applied.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/health", health.Health)
	h.router.HandleFunc("/", h.sendOrder)
	h.router.HandleFunc("/send-order", h.sendOrder)
	h.router.MethodNotAllowed(sendorder.MethodNotAllowed)
}

func (h *HTTPTransport) sendOrder(w http.ResponseWriter, r *http.Request) {
	sendorder.SendOrder(w, r, h.service)
}

func newRouter(cfg config.ServerConfig) *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.MaxBodyBytes > 0 {
		router.Use(middleware.RequestSize(cfg.MaxBodyBytes))
	}

	// Preflights are passed through so the order handler answers them with
	// its fixed header set.
	c := cors.New(cors.Options{
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		AllowedMethods:     cfg.CORS.AllowedMethods,
		AllowedHeaders:     cfg.CORS.AllowedHeaders,
		ExposedHeaders:     cfg.CORS.ExposedHeaders,
		AllowCredentials:   cfg.CORS.AllowCredentials,
		MaxAge:             cfg.CORS.MaxAge,
		OptionsPassthrough: true,
	})

	router.Use(c.Handler)

	return router
}

func newServer(cfg config.ServerConfig, router http.Handler) *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}
