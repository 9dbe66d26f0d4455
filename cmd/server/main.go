package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/api"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logger"
	"storefront/internal/messaging"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/order"
	"storefront/internal/product"
	"storefront/internal/session"
	"storefront/internal/user"
	"storefront/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	limiterSweep    = time.Minute
	shutdownTimeout = 10 * time.Second
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	stop := make(chan struct{})
	defer close(stop)

	handler, err := newServer(cfg, database, stop)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.L().Info("storefront listening",
		zap.String("addr", srv.Addr),
		zap.String("env", cfg.AppEnv),
		zap.String("queue_driver", cfg.QueueDriver),
	)
	return serve(ctx, srv)
}

// newServer wires repositories, services and both HTTP surfaces. The rate
// limiter's sweeper runs until stop is closed.
func newServer(cfg *config.Config, database *sql.DB, stop <-chan struct{}) (http.Handler, error) {
	publisher, err := messaging.NewPublisher(cfg)
	if err != nil {
		return nil, err
	}

	productSvc := product.NewService(product.NewRepository(database))
	orderSvc := order.NewService(order.NewRepository(database), publisher)
	userSvc := user.NewService(user.NewRepository(database), cfg.SecretKey)
	sessions := session.NewManager(cfg.SecretKey, cfg.IsProduction())

	apiHandler := api.NewHandler(productSvc, orderSvc, userSvc, sessions)
	webHandler, err := web.NewHandler(productSvc, orderSvc, userSvc, sessions)
	if err != nil {
		return nil, err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	go limiter.Run(limiterSweep, stop)

	return setupRouter(apiHandler, webHandler, limiter), nil
}

func setupRouter(apiHandler *api.Handler, webHandler *web.Handler, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(limiter.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Method(http.MethodGet, "/metrics", metrics.Default.Handler())

	r.Route("/api", apiHandler.Routes)
	r.Group(webHandler.Routes)
	return r
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- startServerFunc(srv) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
