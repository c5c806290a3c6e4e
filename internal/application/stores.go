package application

import (
	"context"
	"fmt"

	"rp_market/internal/config"
	"rp_market/internal/domain/service/market"
	"rp_market/internal/infrastructure/persistence/file"
	"rp_market/internal/infrastructure/persistence/memory"
	"rp_market/internal/infrastructure/persistence/postgres"
	"rp_market/internal/infrastructure/persistence/redisstore"
	"rp_market/internal/infrastructure/persistence/sqlitestore"
	"rp_market/pkg/application/connectors"
	"rp_market/pkg/dbmigrate"
)

type stateStore interface {
	market.StateStore
	Ping(ctx context.Context) error
}

type ledgerStore interface {
	market.LedgerStore
	Ping(ctx context.Context) error
}

type stores struct {
	state  stateStore
	ledger ledgerStore
	close  func(ctx context.Context)
}

// openStores открывает хранилища выбранного драйвера.
func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return stores{
			state:  memory.NewStateStore(),
			ledger: memory.NewLedgerStore(),
			close:  func(context.Context) {},
		}, nil

	case config.DriverPostgres:
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
			ConnectTimeout:  cfg.Postgres.ConnectTimeout,
		}
		db := pg.Client(ctx)

		var err error
		if len(cfg.Postgres.Migrations) > 0 {
			err = dbmigrate.FromFiles(ctx, db, cfg.Postgres.Migrations...)
		} else {
			err = dbmigrate.FromFS(ctx, db, postgres.Migrations, postgres.MigrationsGlob)
		}

		if err != nil {
			pg.Close(ctx)
			return stores{}, fmt.Errorf("dbmigrate: %w", err)
		}

		return stores{
			state:  postgres.NewStateRepository(db),
			ledger: postgres.NewLedgerRepository(db),
			close:  pg.Close,
		}, nil

	case config.DriverRedis:
		rds := &connectors.Redis{
			Username:       cfg.Redis.Username,
			Password:       cfg.Redis.Password,
			Address:        cfg.Redis.Address,
			DatabaseNumber: cfg.Redis.DB,
			PoolSize:       cfg.Redis.PoolSize,
			DialTimeout:    cfg.Redis.DialTimeout,
		}
		client := rds.Client(ctx)

		return stores{
			state:  redisstore.NewStateStore(client, cfg.Storage.RedisKeyPrefix),
			ledger: redisstore.NewLedgerStore(client, cfg.Storage.RedisKeyPrefix),
			close:  rds.Close,
		}, nil

	case config.DriverSQLite:
		lite := &connectors.SQLite{Path: cfg.Storage.SQLitePath}
		db := lite.Client(ctx)

		if err := sqlitestore.Migrate(ctx, db); err != nil {
			lite.Close(ctx)
			return stores{}, fmt.Errorf("sqlitestore.Migrate: %w", err)
		}

		return stores{
			state:  sqlitestore.NewStateStore(db),
			ledger: sqlitestore.NewLedgerStore(db),
			close:  lite.Close,
		}, nil

	default:
		state, err := file.NewStateStore(cfg.Storage.Dir)
		if err != nil {
			return stores{}, fmt.Errorf("file.NewStateStore: %w", err)
		}

		ledger, err := file.NewLedgerStore(cfg.Storage.Dir)
		if err != nil {
			return stores{}, fmt.Errorf("file.NewLedgerStore: %w", err)
		}

		return stores{
			state:  state,
			ledger: ledger,
			close:  func(context.Context) {},
		}, nil
	}
}
