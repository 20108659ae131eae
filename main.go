package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/tillpoint/checkout/internal/checkout/graph"
	"github.com/tillpoint/checkout/internal/checkout/inventory"
	"github.com/tillpoint/checkout/internal/checkout/model"
	"github.com/tillpoint/checkout/internal/checkout/repo"
	"github.com/tillpoint/checkout/internal/core"
	"github.com/tillpoint/checkout/internal/shell"
	logx "github.com/tillpoint/checkout/pkg/logger"
	"github.com/tillpoint/checkout/pkg/metrics"
	pkgredis "github.com/tillpoint/checkout/pkg/redis"
)

// AppConfig defines all configurable parameters for the checkout console,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis   pkgredis.Config
	Metrics model.MetricsConfig

	// Checkout
	Catalog  model.CatalogConfig
	Customer model.CustomerConfig
	Journal  model.JournalConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load(".env")

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		logx.Fatal().Err(err).Msg("Failed to process environment config")
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})
	if envErr != nil {
		logx.Warn().Err(envErr).Msg("Could not load .env file")
	}

	products, err := inventory.LoadFile(envCfg.Catalog.Path)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to load catalog")
	}
	inv, err := inventory.New(products)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build inventory")
	}

	balance, err := decimal.NewFromString(envCfg.Customer.Balance)
	if err != nil || balance.IsNegative() {
		logx.Fatal().Str("balance", envCfg.Customer.Balance).Msg("Invalid CUSTOMER_BALANCE")
	}
	account := model.NewAccount(envCfg.Customer.Name, balance)

	journal, closeJournal := buildJournal(ctx, envCfg)
	defer closeJournal()

	reg := prometheus.NewRegistry()
	recorder := metrics.NewCheckoutMetrics(reg)
	if envCfg.Metrics.Addr != "" {
		srv := &http.Server{Addr: envCfg.Metrics.Addr, Handler: metrics.Handler(reg), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logx.Info().Str("addr", srv.Addr).Msg("metrics listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logx.Error().Err(err).Msg("metrics server stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	engine, err := graph.NewEngine(ctx, inv,
		graph.WithNotifier(shell.NoticePrinter{Out: os.Stdout}),
		graph.WithRecorder(recorder),
	)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build checkout graph")
	}

	sh := shell.New(shell.Config{
		In:        os.Stdin,
		Out:       os.Stdout,
		Inventory: inv,
		Checkout:  engine,
		Account:   account,
		Journal:   journal,
	})
	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logx.Error().Err(err).Msg("shell stopped")
	}
}

// buildJournal picks the Redis receipt journal when REDIS_URL is set and
// falls back to memory otherwise.
func buildJournal(ctx context.Context, cfg AppConfig) (repo.ReceiptRepository, func()) {
	if !cfg.Redis.Enabled() {
		return repo.NewMemoryReceiptRepository(), func() {}
	}

	ttl, err := time.ParseDuration(cfg.Journal.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("ttl", cfg.Journal.TTL).Msg("Invalid RECEIPT_TTL")
	}

	rdb, err := cfg.Redis.New(ctx)
	if err != nil {
		logx.Warn().Err(err).Msg("Redis unavailable; receipts kept in memory")
		return repo.NewMemoryReceiptRepository(), func() {}
	}
	logx.Info().Msg("Connected to Redis successfully")
	return repo.NewRedisReceiptRepository(rdb, ttl), func() { _ = rdb.Close() }
}
