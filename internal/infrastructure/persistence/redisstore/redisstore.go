// Package redisstore — хранилища рынка в Redis.
//
// Раскладка ключей:
//   - {prefix}:state — HASH, поле = id товара, значение = JSON ItemState;
//   - {prefix}:ledger — LIST JSON-сделок в порядке добавления;
//   - {prefix}:ledger:ids — SET id сделок для идемпотентной записи.
package redisstore

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"rp_market/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// appendScript добавляет сделку, только если её id ещё не встречался.
var appendScript = redis.NewScript(`
if redis.call('SADD', KEYS[2], ARGV[1]) == 1 then
	redis.call('RPUSH', KEYS[1], ARGV[2])
	return 1
end
return 0
`) //nolint:gochecknoglobals

type Keys struct {
	State     string
	Ledger    string
	LedgerIDs string
}

func NewKeys(prefix string) Keys {
	return Keys{
		State:     prefix + ":state",
		Ledger:    prefix + ":ledger",
		LedgerIDs: prefix + ":ledger:ids",
	}
}

type StateStore struct {
	client redis.UniversalClient
	keys   Keys
}

func NewStateStore(client redis.UniversalClient, prefix string) *StateStore {
	return &StateStore{client: client, keys: NewKeys(prefix)}
}

func (s *StateStore) Load(ctx context.Context) (entity.MarketState, error) {
	fields, err := s.client.HGetAll(ctx, s.keys.State).Result()
	if err != nil {
		return nil, fmt.Errorf("client.HGetAll: %w", err)
	}

	return decodeState(fields)
}

// Save заменяет hash состояния целиком в MULTI/EXEC.
func (s *StateStore) Save(ctx context.Context, state entity.MarketState) error {
	fields, err := encodeState(state)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.keys.State)
		if len(fields) > 0 {
			pipe.HSet(ctx, s.keys.State, fields)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("client.TxPipelined: %w", err)
	}

	return nil
}

func (s *StateStore) Put(ctx context.Context, itemID string, item entity.ItemState) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := s.client.HSet(ctx, s.keys.State, itemID, data).Err(); err != nil {
		return fmt.Errorf("client.HSet: %w", err)
	}

	return nil
}

func (s *StateStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

type LedgerStore struct {
	client redis.UniversalClient
	keys   Keys
}

func NewLedgerStore(client redis.UniversalClient, prefix string) *LedgerStore {
	return &LedgerStore{client: client, keys: NewKeys(prefix)}
}

func (s *LedgerStore) Load(ctx context.Context) ([]entity.Transaction, error) {
	return s.lrange(ctx, 0, -1)
}

func (s *LedgerStore) Append(ctx context.Context, tx entity.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	keys := []string{s.keys.Ledger, s.keys.LedgerIDs}
	if err := appendScript.Run(ctx, s.client, keys, tx.ID, data).Err(); err != nil {
		return fmt.Errorf("appendScript.Run: %w", err)
	}

	return nil
}

func (s *LedgerStore) Recent(ctx context.Context, n int) ([]entity.Transaction, error) {
	if n <= 0 {
		return []entity.Transaction{}, nil
	}

	return s.lrange(ctx, -int64(n), -1)
}

func (s *LedgerStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *LedgerStore) lrange(ctx context.Context, start, stop int64) ([]entity.Transaction, error) {
	items, err := s.client.LRange(ctx, s.keys.Ledger, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("client.LRange: %w", err)
	}

	return decodeLedger(items)
}

func encodeState(state entity.MarketState) (map[string]any, error) {
	fields := make(map[string]any, len(state))

	for itemID, item := range state {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal %s: %w", itemID, err)
		}

		fields[itemID] = string(data)
	}

	return fields, nil
}

func decodeState(fields map[string]string) (entity.MarketState, error) {
	state := make(entity.MarketState, len(fields))

	for itemID, raw := range fields {
		var item entity.ItemState
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("json.Unmarshal %s: %w", itemID, err)
		}

		state[itemID] = item
	}

	return state, nil
}

func decodeLedger(items []string) ([]entity.Transaction, error) {
	txs := make([]entity.Transaction, 0, len(items))

	for i, raw := range items {
		var tx entity.Transaction
		if err := json.Unmarshal([]byte(raw), &tx); err != nil {
			return nil, fmt.Errorf("json.Unmarshal ledger[%d]: %w", i, err)
		}

		txs = append(txs, tx)
	}

	return txs, nil
}
