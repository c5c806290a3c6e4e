// Package application собирает рынок из конфигурации и запускает все модули
// под одной errgroup.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"rp_market/internal/config"
	"rp_market/internal/domain/service/market"
	"rp_market/internal/infrastructure/catalog"
	"rp_market/internal/infrastructure/country"
	"rp_market/internal/infrastructure/monitoring"
	"rp_market/internal/infrastructure/queue"
	"rp_market/internal/server"
	"rp_market/internal/worker"
	"rp_market/pkg/application/connectors"
	"rp_market/pkg/application/modules"
	"rp_market/pkg/contextx"
	"rp_market/pkg/logx"
	"rp_market/pkg/middlewarex"
	"rp_market/pkg/probe"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func Run(ctx context.Context, cfg config.Config) error {
	logger(ctx).Info(
		"application starting",
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
		slog.String(logx.FieldDriver, cfg.Storage.Driver),
	)

	stores, err := openStores(ctx, cfg)
	if err != nil {
		return fmt.Errorf("openStores: %w", err)
	}
	defer stores.close(ctx)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), //nolint:exhaustruct
	)

	items, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("catalog.Load: %w", err)
	}

	countries := country.NewFileLookup(cfg.Country.Dir, cfg.Country.CacheTTL)

	marketService := market.NewService(stores.state, stores.ledger).
		WithCountries(countries).
		WithCatalog(items).
		WithRecorder(monitoring.NewMarketRecorder(registry)).
		WithOptions(cfg.Market.PricingOptions())

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return worker.NewCountryRefresher(countries, cfg.Country.RefreshInterval).Run(ctx)
	})

	if cfg.Queue.Enabled {
		asynqClient := &connectors.AsynqClient{
			Username:       cfg.Redis.Username,
			Password:       cfg.Redis.Password,
			Address:        cfg.Redis.Address,
			DatabaseNumber: cfg.Redis.DB,
		}
		defer asynqClient.Close(ctx)

		marketService.WithLedgerRetrier(queue.NewLedgerQueue(asynqClient.Client(ctx), cfg.Queue.Name, cfg.Queue.MaxRetry))

		modules.AsynqServer{
			RedisUsername: cfg.Redis.Username,
			RedisPassword: cfg.Redis.Password,
			RedisAddress:  cfg.Redis.Address,
			RedisDB:       cfg.Redis.DB,
			Concurrency:   cfg.Queue.Concurrency,
		}.Run(
			ctx,
			g,
			modules.AsynqQueues{cfg.Queue.Name: 1},
			modules.AsynqHandler{
				Pattern: queue.TypeLedgerAppend,
				Handle:  queue.NewLedgerAppendHandler(stores.ledger),
			},
		)
	}

	srv := server.NewServer(server.NewMarketServer(marketService, cfg.Market.SnapshotRecent))
	if cfg.RateLimit.RPS > 0 {
		srv = srv.WithRateLimiter(middlewarex.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Handler)
	}

	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr: cfg.HTTP.ListenAddress,
		Handler: server.NewRouter(srv, server.RouterOptions{
			BasePath:            cfg.HTTP.BasePath,
			Registerer:          registry,
			SensitiveDataMasker: logx.NewSensitiveDataMasker(),
			LogFieldMaxLen:      cfg.Log.FieldMaxLen,
		}),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
		Checks: []probe.Check{
			{Name: "state", Check: stores.state.Ping},
			{Name: "ledger", Check: stores.ledger.Ping},
		},
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Metrics.ListenAddress,
		Gatherer:      registry,
	}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	logger(ctx).Info("application stopped")

	return nil
}
