package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/notify/internal/config"
	"github.com/corray333/backend-labs/notify/internal/dal/smtp"
	"github.com/corray333/backend-labs/notify/internal/otel"
	"github.com/corray333/backend-labs/notify/internal/render/orderpdf"
	"github.com/corray333/backend-labs/notify/internal/service/services/ordersvc"
	httptransport "github.com/corray333/backend-labs/notify/internal/transport/http"
)

// App represents the application.
type App struct {
	cfg            *config.Config
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp(cfg *config.Config) *App {
	otelController := otel.MustInitOtel(cfg.Tracing)

	renderer := orderpdf.New(
		orderpdf.WithShop(cfg.Shop.Name, cfg.Shop.Currency),
		orderpdf.WithFonts(cfg.PDF.FontRegular, cfg.PDF.FontBold),
	)

	if err := cfg.Mail.Validate(); err != nil {
		slog.Warn("Mail configuration is incomplete, orders will be rejected", "error", err)
	}

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithMailConfig(cfg.Mail),
		ordersvc.WithRenderer(renderer),
		ordersvc.WithSender(smtp.NewClient(cfg.Mail)),
		ordersvc.WithShop(cfg.Shop.Name, cfg.Shop.Currency),
	)

	transport := httptransport.NewHTTPTransport(cfg.Server, orderSvc)
	transport.RegisterRoutes()

	return &App{
		cfg:            cfg,
		orderSvc:       orderSvc,
		transport:      transport,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server", "port", a.cfg.Server.Port)
		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			stop <- syscall.SIGTERM
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	a.gracefulShutdown()
}

// gracefulShutdown stops the HTTP server, then flushes pending spans.
func (a *App) gracefulShutdown() {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.otelController.Shutdown(ctx); err != nil {
		slog.Error("Otel trace provider shutdown error", "error", err)
	} else {
		slog.Info("Otel trace provider stopped gracefully")
	}

	slog.Info("Application shutdown complete")
}
