package connectors

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"rp_market/pkg/logx"
)

const defaultConnectTimeout = 10 * time.Second

// Postgres лениво открывает пул соединений. Ошибка подключения при старте
// фатальна: рынок без хранилища состояния не обслуживает запросы.
type Postgres struct {
	value           *sqlx.DB
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
	init            sync.Once
}

func (p *Postgres) Client(ctx context.Context) *sqlx.DB {
	p.init.Do(func() {
		connectCtx, cancel := context.WithTimeout(ctx, lo.Ternary(p.ConnectTimeout > 0, p.ConnectTimeout, defaultConnectTimeout))
		defer cancel()

		p.value = lo.Must(sqlx.ConnectContext(connectCtx, "pgx", p.DSN))

		p.value.SetMaxOpenConns(p.MaxOpenConns)
		p.value.SetMaxIdleConns(p.MaxIdleConns)
		p.value.SetConnMaxLifetime(p.ConnMaxLifetime)

		logger(ctx).Info("postgres connected", p.logAttrs()...)
	})

	return p.value
}

func (p *Postgres) Close(ctx context.Context) {
	if p.value == nil {
		return
	}

	if err := p.value.Close(); err != nil {
		logger(ctx).Error("postgresClient.Close", logx.Error(err))
	}

	logger(ctx).Info("postgres disconnected", p.logAttrs()...)
}

// logAttrs не выводит логин и пароль из DSN.
func (p *Postgres) logAttrs() []any {
	u, err := url.Parse(p.DSN)
	if err != nil {
		return nil
	}

	return []any{
		slog.String("host", u.Host),
		slog.String("database", u.Path),
	}
}
