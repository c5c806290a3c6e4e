package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rp_market/internal/domain/entity"
)

const (
	selectStateQuery = `SELECT item_id, stock, demand, trend FROM market_state`
	upsertStateQuery = `INSERT INTO market_state (item_id, stock, demand, trend, updated_at)
VALUES (:item_id, :stock, :demand, :trend, now())
ON CONFLICT (item_id) DO UPDATE
SET stock = EXCLUDED.stock, demand = EXCLUDED.demand, trend = EXCLUDED.trend, updated_at = now()`
	deleteStateQuery = `DELETE FROM market_state`
)

type StateRepository struct {
	db *sqlx.DB
}

func NewStateRepository(db *sqlx.DB) *StateRepository {
	return &StateRepository{db: db}
}

func (r *StateRepository) Load(ctx context.Context) (entity.MarketState, error) {
	var rows []stateSchema
	if err := r.db.SelectContext(ctx, &rows, selectStateQuery); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	state := make(entity.MarketState, len(rows))
	for _, row := range rows {
		state[row.ItemID] = row.toDomain()
	}

	return state, nil
}

// Save заменяет состояние рынка целиком в одной транзакции.
func (r *StateRepository) Save(ctx context.Context, state entity.MarketState) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteStateQuery); err != nil {
			return fmt.Errorf("tx.ExecContext delete: %w", err)
		}

		for itemID, item := range state {
			if _, err := tx.NamedExecContext(ctx, upsertStateQuery, newStateSchema(itemID, item)); err != nil {
				return fmt.Errorf("tx.NamedExecContext %s: %w", itemID, err)
			}
		}

		return nil
	})
}

func (r *StateRepository) Put(ctx context.Context, itemID string, item entity.ItemState) error {
	if _, err := r.db.NamedExecContext(ctx, upsertStateQuery, newStateSchema(itemID, item)); err != nil {
		return fmt.Errorf("db.NamedExecContext: %w", err)
	}

	return nil
}

func (r *StateRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func newStateSchema(itemID string, item entity.ItemState) stateSchema {
	return stateSchema{ItemID: itemID, Stock: item.Stock, Demand: item.Demand, Trend: item.Trend}
}
