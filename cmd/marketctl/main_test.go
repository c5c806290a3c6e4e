package main

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"rp_market/internal/domain/service/market"
	"rp_market/internal/infrastructure/catalog"
	"rp_market/internal/infrastructure/persistence/memory"
	"rp_market/internal/server"
	"rp_market/pkg/rest"
)

func newAPI(t *testing.T) string {
	t.Helper()

	svc := market.NewService(memory.NewStateStore(), memory.NewLedgerStore()).WithCatalog(catalog.Default())
	srv := server.NewServer(server.NewMarketServer(svc, 40))

	httpServer := httptest.NewServer(server.NewRouter(srv, server.RouterOptions{BasePath: "/api/market"}))
	t.Cleanup(httpServer.Close)

	return httpServer.URL + "/api/market"
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()

	return out.String(), err
}

func TestMarketctl(t *testing.T) {
	rq := require.New(t)
	addr := newAPI(t)

	out, err := run(t, "catalog", "--addr", addr)
	rq.NoError(err)

	var items []rest.CatalogItem
	rq.NoError(json.Unmarshal([]byte(out), &items))
	rq.Len(items, 2)

	out, err = run(t, "quote", "oil", "--addr", addr)
	rq.NoError(err)

	var quote rest.QuoteResponse
	rq.NoError(json.Unmarshal([]byte(out), &quote))
	rq.InDelta(300.0, quote.Price, 1e-9)

	out, err = run(t, "trade", "sell", "iron", "--qty", "20", "--user", "u-7", "--addr", addr, "--verbose")
	rq.NoError(err)

	var tx rest.Transaction
	rq.NoError(json.Unmarshal([]byte(out), &tx))
	rq.Equal("u-7", tx.Actor)
	rq.Equal("sell", tx.Side)

	out, err = run(t, "snapshot", "--recent", "5", "--addr", addr)
	rq.NoError(err)

	var snapshot rest.SnapshotResponse
	rq.NoError(json.Unmarshal([]byte(out), &snapshot))
	rq.Len(snapshot.Recent, 1)
	rq.InDelta(20.0, snapshot.State["iron"].Stock, 1e-9)

	_, err = run(t, "trade", "hold", "iron", "--addr", addr)
	rq.ErrorContains(err, "InvalidSide")

	_, err = run(t, "trade", "buy", "--addr", addr)
	rq.Error(err)

}
