package config

import (
	"time"

	"rp_market/internal/domain/service/pricing"
)

type Market struct {
	BasePrice      float64 `env:"MARKET_BASE_PRICE" envDefault:"100"`
	MinPrice       float64 `env:"MARKET_MIN_PRICE" envDefault:"0.01"`
	MaxPrice       float64 `env:"MARKET_MAX_PRICE" envDefault:"1e9"`
	ScarcityFactor float64 `env:"MARKET_SCARCITY_FACTOR" envDefault:"1"`
	SnapshotRecent int     `env:"MARKET_SNAPSHOT_RECENT" envDefault:"40"`
}

// PricingOptions приводит настройки к опциям ценообразования.
func (m Market) PricingOptions() pricing.Options {
	return pricing.Overrides{
		BasePrice:      &m.BasePrice,
		MinPrice:       &m.MinPrice,
		MaxPrice:       &m.MaxPrice,
		ScarcityFactor: &m.ScarcityFactor,
	}.Apply(pricing.DefaultOptions())
}

type Country struct {
	Dir      string        `env:"COUNTRY_DIR" envDefault:"./map/world/countries"`
	CacheTTL time.Duration `env:"COUNTRY_CACHE_TTL" envDefault:"10m"`

	// RefreshInterval 0 отключает фоновое обновление, индекс читается один раз при старте.
	RefreshInterval time.Duration `env:"COUNTRY_REFRESH_INTERVAL" envDefault:"5m"`
}

type Catalog struct {
	Path string `env:"CATALOG_PATH"`
}

type Queue struct {
	Enabled     bool   `env:"LEDGER_QUEUE_ENABLED" envDefault:"false"`
	Name        string `env:"LEDGER_QUEUE_NAME" envDefault:"ledger"`
	MaxRetry    int    `env:"LEDGER_QUEUE_MAX_RETRY" envDefault:"10"`
	Concurrency int    `env:"LEDGER_QUEUE_CONCURRENCY" envDefault:"2"`
}
