package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"
	"github.com/stretchr/testify/require"

	"rp_market/internal/domain/entity"
	"rp_market/internal/domain/value"
)

func TestNewKeys(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	keys := NewKeys("market")
	r.Equal("market:state", keys.State)
	r.Equal("market:ledger", keys.Ledger)
	r.Equal("market:ledger:ids", keys.LedgerIDs)
}

func TestStateCodec(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	state := entity.MarketState{
		"oil":  {Stock: 10, Demand: 1, Trend: 0.5},
		"iron": {},
	}

	fields, err := encodeState(state)
	r.NoError(err)
	r.JSONEq(`{"stock":10,"demand":1,"trend":0.5}`, fields["oil"].(string))

	raw := make(map[string]string, len(fields))
	for k, v := range fields {
		raw[k] = v.(string)
	}

	decoded, err := decodeState(raw)
	r.NoError(err)
	r.Equal(state, decoded)

	_, err = decodeState(map[string]string{"oil": "{"})
	r.ErrorContains(err, "oil")
}

func TestDecodeLedger(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	txs, err := decodeLedger([]string{
		`{"id":"tx_1","actor":"anon","country":null,"item":"oil","qty":2,"price_per_unit":5,"total_price":10,"side":"buy","breakdown":{"base":100},"ts":1}`,
	})
	r.NoError(err)
	r.Len(txs, 1)
	r.Equal(value.SideBuy, txs[0].Side)
	r.Nil(txs[0].Country)

	_, err = decodeLedger([]string{`[]`, `nope`})
	r.Error(err)
}

// newTestClient поднимает miniredis; REDIS_TEST_ADDRESS направляет тесты в настоящий Redis.
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		addr = miniredis.RunT(t).Addr()
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestStateStore(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ctx := context.Background()

	client := newTestClient(t)
	prefix := "test:" + xid.New().String()

	states := NewStateStore(client, prefix)
	r.NoError(states.Ping(ctx))

	empty, err := states.Load(ctx)
	r.NoError(err)
	r.Empty(empty)

	r.NoError(states.Save(ctx, entity.MarketState{"oil": {Stock: 3, Demand: 1}, "gold": {Stock: 1}}))

	// Save заменяет документ целиком
	r.NoError(states.Save(ctx, entity.MarketState{"oil": {Stock: 3, Demand: 1}}))
	r.NoError(states.Put(ctx, "iron", entity.ItemState{Trend: 0.1}))

	got, err := states.Load(ctx)
	r.NoError(err)
	r.Equal(entity.MarketState{"oil": {Stock: 3, Demand: 1}, "iron": {Trend: 0.1}}, got)

	// Put меняет только свой товар
	r.NoError(states.Put(ctx, "oil", entity.ItemState{Stock: 7}))

	got, err = states.Load(ctx)
	r.NoError(err)
	r.Equal(entity.MarketState{"oil": {Stock: 7}, "iron": {Trend: 0.1}}, got)
}

func TestLedgerStore(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ctx := context.Background()

	client := newTestClient(t)
	prefix := "test:" + xid.New().String()

	ledger := NewLedgerStore(client, prefix)
	r.NoError(ledger.Ping(ctx))

	none, err := ledger.Recent(ctx, 5)
	r.NoError(err)
	r.Empty(none)

	// повтор id (повторная доставка из очереди) не дублирует запись
	for _, id := range []string{"tx_a", "tx_b", "tx_a", "tx_c"} {
		r.NoError(ledger.Append(ctx, entity.Transaction{ID: id, Item: "oil", Qty: 1, Side: value.SideSell}))
	}

	all, err := ledger.Load(ctx)
	r.NoError(err)
	r.Len(all, 3)
	r.Equal([]string{"tx_a", "tx_b", "tx_c"}, []string{all[0].ID, all[1].ID, all[2].ID})

	recent, err := ledger.Recent(ctx, 2)
	r.NoError(err)
	r.Len(recent, 2)
	r.Equal("tx_b", recent[0].ID)
	r.Equal("tx_c", recent[1].ID)

	recent, err = ledger.Recent(ctx, 10)
	r.NoError(err)
	r.Len(recent, 3)

	recent, err = ledger.Recent(ctx, 0)
	r.NoError(err)
	r.Empty(recent)

	keys := NewKeys(prefix)
	members, err := client.SCard(ctx, keys.LedgerIDs).Result()
	r.NoError(err)
	r.EqualValues(3, members)
}

func TestStores_PrefixIsolation(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ctx := context.Background()

	client := newTestClient(t)

	a := NewLedgerStore(client, "a:"+xid.New().String())
	b := NewLedgerStore(client, "b:"+xid.New().String())

	r.NoError(a.Append(ctx, entity.Transaction{ID: "tx_1", Side: value.SideBuy}))

	// тот же id под другим префиксом это другой журнал
	r.NoError(b.Append(ctx, entity.Transaction{ID: "tx_1", Side: value.SideBuy}))

	txs, err := b.Load(ctx)
	r.NoError(err)
	r.Len(txs, 1)
}
