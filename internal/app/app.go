// Package app wires the order form service together: configuration,
// upstream API clients, session storage, health probes, middleware, and
// the HTTP server lifecycle.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/xenking/order-form/internal/bcapi"
	"github.com/xenking/order-form/internal/domain/summary"
	"github.com/xenking/order-form/internal/handler"
	"github.com/xenking/order-form/internal/ordersapi"
	"github.com/xenking/order-form/internal/orgapi"
	"github.com/xenking/order-form/internal/session"
	"github.com/xenking/order-form/pkg/format"
	"github.com/xenking/order-form/pkg/health"
	"github.com/xenking/order-form/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles
// graceful shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// Upstream API clients.
	orders, err := ordersapi.New(cfg.OrdersAPIURL)
	if err != nil {
		return errors.Wrap(err, "create orders API client")
	}
	orgs, err := orgapi.New(cfg.OrganisationsAPIURL)
	if err != nil {
		return errors.Wrap(err, "create organisations API client")
	}
	catalogue, err := bcapi.New(cfg.BuyingCatalogueAPIURL)
	if err != nil {
		return errors.Wrap(err, "create buying catalogue API client")
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.AddReadinessCheck("orders-api", 5*time.Second,
		health.HTTPEndpointCheck(nil, cfg.OrdersAPIURL))
	healthSvc.AddReadinessCheck("buying-catalogue-api", 5*time.Second,
		health.HTTPEndpointCheck(nil, cfg.BuyingCatalogueAPIURL))

	// Session store: Redis when configured, in-process memory otherwise.
	var sessions session.Store
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return errors.Wrap(err, "parse redis URL")
		}
		rdb := redis.NewClient(opts)
		defer func() {
			_ = rdb.Close()
		}()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return errors.Wrap(err, "ping redis")
		}
		healthSvc.AddReadinessCheck("redis", 5*time.Second, func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})

		sessions = session.NewRedis(rdb, cfg.SessionTTL)
	} else {
		lg.Warn("No Redis URL configured, sessions are in-process only")
		sessions = session.NewMemory(cfg.SessionTTL)
	}

	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	policy := summary.DropUnknownRecipients
	if cfg.RejectUnknownRecipients {
		policy = summary.RejectUnknownRecipients
	}

	h, err := handler.New(handler.Config{
		Format:  format.Default,
		Policy:  policy,
		Content: handler.DefaultContent(),
	}, orders, orgs, catalogue, sessions)
	if err != nil {
		return errors.Wrap(err, "create handler")
	}

	// Mux: health endpoints + page routes on one server.
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/", h.Routes())

	pages := otelhttp.NewHandler(mux, "order-form",
		otelhttp.WithTracerProvider(m.TracerProvider()),
		otelhttp.WithMeterProvider(m.MeterProvider()),
	)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(pages,
			httpmiddleware.Recovery(),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.RequestID(),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
