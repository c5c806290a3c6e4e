// Package monitoring — prometheus-метрики рынка.
package monitoring

import (
	"strconv"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"rp_market/internal/domain/entity"
)

const namespace = "rp_market"

type MarketRecorder struct {
	quotes         *prometheus.CounterVec
	quotePrice     *prometheus.GaugeVec
	trades         *prometheus.CounterVec
	tradeVolume    *prometheus.CounterVec
	tradeValue     *prometheus.CounterVec
	tradeDuration  prometheus.Histogram
	ledgerFailures *prometheus.CounterVec
	rejected       *prometheus.CounterVec
}

func NewMarketRecorder(reg prometheus.Registerer) *MarketRecorder {
	factory := promauto.With(reg)

	return &MarketRecorder{
		quotes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "quotes_total",
			Help:      "Number of quotes served.",
		}, []string{"item"}),
		quotePrice: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "last_quote_price",
			Help:      "Last quoted unit price.",
		}, []string{"item"}),
		trades: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "trades_total",
			Help:      "Number of executed trades.",
		}, []string{"item", "side"}),
		tradeVolume: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "traded_quantity_total",
			Help:      "Traded quantity.",
		}, []string{"item", "side"}),
		tradeValue: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "traded_value_total",
			Help:      "Sum of trade totals.",
		}, []string{"item", "side"}),
		tradeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "trade_duration_seconds",
			Help:      "Trade execution time including persistence.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		ledgerFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "append_failures_total",
			Help:      "Ledger appends that failed after the state was saved.",
		}, []string{"item", "retried"}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "rejected_requests_total",
			Help:      "Requests rejected by validation.",
		}, []string{"op", "code"}),
	}
}

func (m *MarketRecorder) ObserveQuote(itemID string, price float64) {
	m.quotes.WithLabelValues(itemID).Inc()
	m.quotePrice.WithLabelValues(itemID).Set(price)
}

func (m *MarketRecorder) ObserveTrade(tx entity.Transaction, duration time.Duration) {
	side := tx.Side.String()

	m.trades.WithLabelValues(tx.Item, side).Inc()
	m.tradeVolume.WithLabelValues(tx.Item, side).Add(tx.Qty)
	m.tradeValue.WithLabelValues(tx.Item, side).Add(tx.TotalPrice)
	m.tradeDuration.Observe(duration.Seconds())
}

func (m *MarketRecorder) ObserveLedgerFailure(itemID string, retried bool) {
	m.ledgerFailures.WithLabelValues(itemID, strconv.FormatBool(retried)).Inc()
}

func (m *MarketRecorder) ObserveValidationFailure(op string, code failure.ErrorCode) {
	m.rejected.WithLabelValues(op, code.String()).Inc()
}
