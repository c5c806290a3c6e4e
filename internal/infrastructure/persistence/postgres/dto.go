package postgres

import (
	"database/sql"
	"fmt"

	"rp_market/internal/domain/entity"
	"rp_market/internal/domain/value"
)

// stateSchema — строка market_state.
type stateSchema struct {
	ItemID string  `db:"item_id"`
	Stock  float64 `db:"stock"`
	Demand float64 `db:"demand"`
	Trend  float64 `db:"trend"`
}

func (s stateSchema) toDomain() entity.ItemState {
	return entity.ItemState{Stock: s.Stock, Demand: s.Demand, Trend: s.Trend}
}

// ledgerSchema — строка market_ledger.
type ledgerSchema struct {
	ID           string         `db:"id"`
	Actor        string         `db:"actor"`
	Country      sql.NullString `db:"country"`
	Item         string         `db:"item"`
	Qty          float64        `db:"qty"`
	PricePerUnit float64        `db:"price_per_unit"`
	TotalPrice   float64        `db:"total_price"`
	Side         string         `db:"side"`
	Breakdown    []byte         `db:"breakdown"`
	Ts           int64          `db:"ts"`
}

func newLedgerSchema(tx entity.Transaction) (ledgerSchema, error) {
	breakdown, err := json.Marshal(tx.Breakdown)
	if err != nil {
		return ledgerSchema{}, fmt.Errorf("json.Marshal: %w", err)
	}

	row := ledgerSchema{
		ID:           tx.ID,
		Actor:        tx.Actor,
		Item:         tx.Item,
		Qty:          tx.Qty,
		PricePerUnit: tx.PricePerUnit,
		TotalPrice:   tx.TotalPrice,
		Side:         tx.Side.String(),
		Breakdown:    breakdown,
		Ts:           tx.Ts,
	}

	if tx.Country != nil {
		row.Country = sql.NullString{String: *tx.Country, Valid: true}
	}

	return row, nil
}

func (s ledgerSchema) toDomain() (entity.Transaction, error) {
	var breakdown entity.Breakdown
	if len(s.Breakdown) > 0 {
		if err := json.Unmarshal(s.Breakdown, &breakdown); err != nil {
			return entity.Transaction{}, fmt.Errorf("json.Unmarshal breakdown of %s: %w", s.ID, err)
		}
	}

	tx := entity.Transaction{
		ID:           s.ID,
		Actor:        s.Actor,
		Item:         s.Item,
		Qty:          s.Qty,
		PricePerUnit: s.PricePerUnit,
		TotalPrice:   s.TotalPrice,
		Side:         value.Side(s.Side),
		Breakdown:    breakdown,
		Ts:           s.Ts,
	}

	if s.Country.Valid {
		country := s.Country.String
		tx.Country = &country
	}

	return tx, nil
}

func toTransactions(rows []ledgerSchema) ([]entity.Transaction, error) {
	txs := make([]entity.Transaction, 0, len(rows))

	for _, row := range rows {
		tx, err := row.toDomain()
		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}

	return txs, nil
}
