package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"rp_market/internal/domain/entity"
	"rp_market/internal/domain/service/market"
	"rp_market/internal/infrastructure/catalog"
	"rp_market/internal/infrastructure/persistence/memory"
	"rp_market/internal/server"
	"rp_market/pkg/apiclient"
	"rp_market/pkg/errcodes"
	"rp_market/pkg/middlewarex"
	"rp_market/pkg/rest"
	"rp_market/pkg/tests"
)

const basePath = "/api/market"

type brokenState struct {
	*memory.StateStore
}

func (brokenState) Put(context.Context, string, entity.ItemState) error {
	return errors.New("disk full at /var/lib/market")
}

type testServer struct {
	market apiclient.Market
	client apiclient.APIClient
	ledger *memory.LedgerStore
}

func newTestServer(t *testing.T, state market.StateStore, limiter *middlewarex.RateLimiter) testServer {
	t.Helper()

	ledger := memory.NewLedgerStore()
	svc := market.NewService(state, ledger).WithCatalog(catalog.Default())

	srv := server.NewServer(server.NewMarketServer(svc, 40))
	if limiter != nil {
		srv = srv.WithRateLimiter(limiter.Handler)
	}

	httpServer := httptest.NewServer(server.NewRouter(srv, server.RouterOptions{
		BasePath:       basePath,
		Registerer:     prometheus.NewRegistry(),
		LogFieldMaxLen: 1024,
	}))
	t.Cleanup(httpServer.Close)

	client := apiclient.NewAPIClient(httpServer.URL+basePath, httpServer.Client())

	return testServer{
		market: apiclient.NewMarket(client),
		client: client,
		ledger: ledger,
	}
}

func TestServer_Root(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ts := newTestServer(t, memory.NewStateStore(), nil)

	root, err := ts.market.Root(context.Background())
	rq.NoError(err)
	rq.Equal([]string{"/catalog", "/snapshot", "/quote", "/trade"}, root.Endpoints)
}

func TestServer_Catalog(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ctx := context.Background()

	state := memory.NewStateStore()
	rq.NoError(state.Put(ctx, "grain", entity.ItemState{Stock: 10}))

	ts := newTestServer(t, state, nil)

	items, err := ts.market.Catalog(ctx)
	rq.NoError(err)
	rq.Len(items, 3)
	rq.Equal("grain", items[0].ID)
	rq.Equal("grain", items[0].Name)
	rq.Equal("iron", items[1].ID)
	rq.Equal("Iron", items[1].Name)
	rq.Equal("ton", items[1].Unit)
	rq.Equal("oil", items[2].ID)
	rq.Equal("energy", items[2].Category)
}

func TestServer_QuoteDefaultsQtyToOne(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ts := newTestServer(t, memory.NewStateStore(), nil)

	quote, err := ts.market.Quote(context.Background(), rest.QuoteRequest{ItemID: "oil"})
	rq.NoError(err)

	rq.InDelta(300.0, quote.Price, 1e-9)
	rq.InDelta(100.0, quote.Breakdown.Base, 1e-9)
	rq.InDelta(3.0, quote.Breakdown.QtyImpact, 1e-9)
	rq.InDelta(1.0, quote.Breakdown.CountryFactor, 1e-9)
}

func TestServer_TradeAndSnapshot(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ctx := context.Background()
	ts := newTestServer(t, memory.NewStateStore(), nil)

	sold, err := ts.market.WithUserID("u-42").Trade(ctx, rest.TradeRequest{
		ItemID: "oil",
		Qty:    100,
		Side:   "sell",
	})
	rq.NoError(err)
	rq.Equal("u-42", sold.Actor)
	rq.Equal("sell", sold.Side)
	rq.Nil(sold.Country)
	rq.True(strings.HasPrefix(sold.ID, "tx_"))

	bought, err := ts.market.Trade(ctx, rest.TradeRequest{
		Actor:     "alice",
		ItemID:    "oil",
		Qty:       10,
		CountryID: "france",
		Side:      "buy",
	})
	rq.NoError(err)
	rq.Equal("alice", bought.Actor)
	rq.NotNil(bought.Country)
	rq.Equal("france", *bought.Country)
	rq.InDelta(bought.PricePerUnit*10, bought.TotalPrice, 0.01)

	snapshot, err := ts.market.Snapshot(ctx, 1)
	rq.NoError(err)
	rq.Len(snapshot.Recent, 1)
	rq.Equal(bought.ID, snapshot.Recent[0].ID)
	rq.InDelta(90.0, snapshot.State["oil"].Stock, 1e-9)

	full, err := ts.market.Snapshot(ctx, -1)
	rq.NoError(err)
	rq.Len(full.Recent, 2)
}

func TestServer_TradeQtyAsString(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ts := newTestServer(t, memory.NewStateStore(), nil)

	var response rest.TradeResponse

	resp, err := ts.client.PostJSON(context.Background(), "/trade", nil,
		`{"itemId":"iron","qty":"5","side":"sell"}`, &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.InDelta(5.0, response.Tx.Qty, 1e-9)
	rq.Equal("anon", response.Tx.Actor)
}

func TestServer_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		endpoint   string
		body       string
		statusCode int
		code       string
	}{
		{
			name:       "Missing item",
			endpoint:   "/trade",
			body:       `{"qty":1,"side":"buy"}`,
			statusCode: http.StatusBadRequest,
			code:       errcodes.MissingItem.String(),
		},
		{
			name:       "Zero quantity",
			endpoint:   "/trade",
			body:       `{"itemId":"oil","qty":0,"side":"buy"}`,
			statusCode: http.StatusBadRequest,
			code:       errcodes.InvalidQuantity.String(),
		},
		{
			name:       "Quantity is not a number",
			endpoint:   "/quote",
			body:       `{"itemId":"oil","qty":"lots"}`,
			statusCode: http.StatusBadRequest,
			code:       errcodes.InvalidQuantity.String(),
		},
		{
			name:       "Side is case sensitive",
			endpoint:   "/trade",
			body:       `{"itemId":"oil","qty":1,"side":"BUY"}`,
			statusCode: http.StatusBadRequest,
			code:       errcodes.InvalidSide.String(),
		},
		{
			name:       "Malformed body",
			endpoint:   "/quote",
			body:       `{"itemId":`,
			statusCode: http.StatusBadRequest,
			code:       errcodes.ValidationError.String(),
		},
		{
			name:       "Actor too long",
			endpoint:   "/trade",
			body:       `{"actor":"` + strings.Repeat("a", 65) + `","itemId":"oil","qty":1,"side":"buy"}`,
			statusCode: http.StatusBadRequest,
			code:       errcodes.ValidationError.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)
			ts := newTestServer(t, memory.NewStateStore(), nil)

			var errResponse rest.Error

			resp, err := ts.client.PostJSON(context.Background(), tc.endpoint, nil, tc.body, nil, &errResponse)
			rq.NoError(err)
			rq.Equal(tc.statusCode, resp.StatusCode)
			rq.Equal(tc.code, string(errResponse.Code))
			rq.NotEmpty(errResponse.SupportID)

			ledger, err := ts.ledger.Load(context.Background())
			rq.NoError(err)
			rq.Empty(ledger)
		})
	}
}

func TestServer_SnapshotBadRecent(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ts := newTestServer(t, memory.NewStateStore(), nil)

	var errResponse rest.Error

	resp, err := ts.client.Get(context.Background(), "/snapshot?recent=ten", nil, nil, &errResponse)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(errcodes.InvalidRecentLimit.String(), string(errResponse.Code))
}

func TestServer_StoreFailureHidesCause(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ts := newTestServer(t, brokenState{StateStore: memory.NewStateStore()}, nil)

	_, err := ts.market.Trade(context.Background(), rest.TradeRequest{ItemID: "oil", Qty: 1, Side: "buy"})
	rq.Error(err)

	var apiErr *apiclient.Error
	rq.ErrorAs(err, &apiErr)
	rq.Equal(http.StatusInternalServerError, apiErr.StatusCode)
	rq.Equal(errcodes.StateSaveFailed.String(), string(apiErr.Body.Code))
	rq.Equal("failed to save market state", apiErr.Body.Message)
	rq.NotContains(apiErr.Body.Message, "/var/lib")
}

func TestServer_RateLimit(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ctx := context.Background()
	ts := newTestServer(t, memory.NewStateStore(), middlewarex.NewRateLimiter(0.001, 2))

	client := ts.market.WithUserID("spammer")

	for range 2 {
		_, err := client.Quote(ctx, rest.QuoteRequest{ItemID: "oil"})
		rq.NoError(err)
	}

	_, err := client.Quote(ctx, rest.QuoteRequest{ItemID: "oil"})

	var apiErr *apiclient.Error
	rq.ErrorAs(err, &apiErr)
	rq.Equal(http.StatusTooManyRequests, apiErr.StatusCode)
	rq.Equal(errcodes.TooManyRequests.String(), string(apiErr.Body.Code))

	// Чтение не ограничивается.
	_, err = client.Snapshot(ctx, 0)
	rq.NoError(err)

	// Бюджет привязан к адресу, а не к X-User-Id.
	_, err = ts.market.WithUserID("someone-else").Quote(ctx, rest.QuoteRequest{ItemID: "oil"})
	rq.ErrorAs(err, &apiErr)
	rq.Equal(http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestServer_RandomTradesGrowLedger(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ctx := context.Background()
	ts := newTestServer(t, memory.NewStateStore(), nil)
	random := tests.NewRandomizer()

	const trades = 25

	var total float64

	for range trades {
		tx, err := ts.market.Trade(ctx, rest.TradeRequest{
			ItemID: "iron",
			Qty:    rest.Quantity(1 + random.Intn(50)),
			Side:   random.Side(),
		})
		rq.NoError(err)

		total += tx.TotalPrice
	}

	ledger, err := ts.ledger.Load(ctx)
	rq.NoError(err)
	rq.Len(ledger, trades)

	var ledgerTotal float64
	for _, tx := range ledger {
		ledgerTotal += tx.TotalPrice
	}

	rq.InDelta(total, ledgerTotal, 1e-6)
}
