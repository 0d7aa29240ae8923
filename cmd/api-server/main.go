package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/nodeapi7000-backend/internal/address"
	"github.com/goodnatureofminers/nodeapi7000-backend/internal/config"
	"github.com/goodnatureofminers/nodeapi7000-backend/internal/mempool"
	"github.com/goodnatureofminers/nodeapi7000-backend/internal/metrics"
	"github.com/goodnatureofminers/nodeapi7000-backend/internal/peers"
	"github.com/goodnatureofminers/nodeapi7000-backend/internal/repository/sqlite"
	"github.com/goodnatureofminers/nodeapi7000-backend/internal/service"
	"github.com/goodnatureofminers/nodeapi7000-backend/internal/transport"
)

func main() {
	cfg := config.Config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, &cfg, logger); err != nil {
		logger.Fatal("api server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	ledger, err := sqlite.NewRepository(cfg.LedgerPath, cfg.LegacyDB, metrics.NewRepository())
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer func() {
		_ = ledger.Close()
	}()

	pool, err := mempool.Open(cfg.MempoolPath)
	if err != nil {
		return fmt.Errorf("open mempool: %w", err)
	}
	defer func() {
		_ = pool.Close()
	}()

	registry := peers.NewRegistry(cfg.SeedPeers)
	dispatcher := service.NewDispatcher(pool, address.Validator{}, cfg, logger, metrics.NewDispatcher())

	serveMetrics(ctx, cfg.OpsAddr, logger)

	srv := transport.NewServer(dispatcher, ledger, registry, logger, cfg.SessionTimeout, cfg.CommandRate)
	if err := srv.Listen(cfg.ListenAddr); err != nil {
		return err
	}

	logger.Info("serving client commands",
		zap.String("addr", srv.Addr().String()),
		zap.String("ledger", cfg.LedgerPath),
		zap.Bool("legacy_db", cfg.LegacyDB))
	return srv.Serve(ctx)
}

func serveMetrics(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = s.Shutdown(context.Background())
	}()
	go func() {
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics http server", zap.Error(err))
		}
	}()
}
