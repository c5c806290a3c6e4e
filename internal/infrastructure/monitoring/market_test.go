package monitoring

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"rp_market/internal/domain/entity"
	"rp_market/internal/domain/value"
	"rp_market/pkg/errcodes"
)

func TestMarketRecorder(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	reg := prometheus.NewRegistry()
	rec := NewMarketRecorder(reg)

	rec.ObserveQuote("oil", 12.5)
	rec.ObserveQuote("oil", 13)
	rec.ObserveTrade(entity.Transaction{Item: "oil", Side: value.SideBuy, Qty: 3, TotalPrice: 39}, time.Millisecond)
	rec.ObserveTrade(entity.Transaction{Item: "oil", Side: value.SideBuy, Qty: 2, TotalPrice: 26}, time.Millisecond)
	rec.ObserveLedgerFailure("oil", true)
	rec.ObserveValidationFailure("trade", errcodes.InvalidSide)

	r.InDelta(2.0, testutil.ToFloat64(rec.quotes.WithLabelValues("oil")), 1e-12)
	r.InDelta(13.0, testutil.ToFloat64(rec.quotePrice.WithLabelValues("oil")), 1e-12)
	r.InDelta(2.0, testutil.ToFloat64(rec.trades.WithLabelValues("oil", "buy")), 1e-12)
	r.InDelta(5.0, testutil.ToFloat64(rec.tradeVolume.WithLabelValues("oil", "buy")), 1e-12)
	r.InDelta(65.0, testutil.ToFloat64(rec.tradeValue.WithLabelValues("oil", "buy")), 1e-12)
	r.InDelta(1.0, testutil.ToFloat64(rec.ledgerFailures.WithLabelValues("oil", "true")), 1e-12)

	expected := `
# HELP rp_market_market_rejected_requests_total Requests rejected by validation.
# TYPE rp_market_market_rejected_requests_total counter
rp_market_market_rejected_requests_total{code="InvalidSide",op="trade"} 1
`
	r.NoError(testutil.GatherAndCompare(reg, strings.NewReader(expected), "rp_market_market_rejected_requests_total"))
}
