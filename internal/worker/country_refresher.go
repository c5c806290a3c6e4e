// Package worker содержит фоновые циклы приложения.
package worker

import (
	"context"
	"log/slog"
	"time"

	"rp_market/pkg/contextx"
	"rp_market/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type countryIndex interface {
	Refresh(ctx context.Context) int
}

// CountryRefresher перечитывает каталог стран при старте и затем каждые interval,
// чтобы сделки не платили за сканирование директории.
type CountryRefresher struct {
	index    countryIndex
	interval time.Duration
}

func NewCountryRefresher(index countryIndex, interval time.Duration) *CountryRefresher {
	return &CountryRefresher{
		index:    index,
		interval: interval,
	}
}

func (w *CountryRefresher) Run(ctx context.Context) error {
	logger(ctx).Info("country refresher started", slog.Duration("interval", w.interval))

	w.refresh(ctx)

	if w.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("country refresher stopped")
			return nil
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *CountryRefresher) refresh(ctx context.Context) {
	start := time.Now()
	keys := w.index.Refresh(ctx)

	logger(ctx).Debug(
		"country index refreshed",
		slog.Int("keys", keys),
		slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
	)
}
