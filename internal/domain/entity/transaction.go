package entity

import "rp_market/internal/domain/value"

// Breakdown — множители, из которых сложилась цена.
type Breakdown struct {
	Base           float64 `json:"base"`
	SupplyFactor   float64 `json:"supplyFactor"`
	DemandFactor   float64 `json:"demandFactor"`
	QtyImpact      float64 `json:"qtyImpact"`
	TrendFactor    float64 `json:"trendFactor"`
	CountryFactor  float64 `json:"countryFactor"`
	ScarcityFactor float64 `json:"scarcityFactor"`
}

// Transaction — запись журнала сделок. После добавления не меняется.
type Transaction struct {
	ID           string     `json:"id"`
	Actor        string     `json:"actor"`
	Country      *string    `json:"country"`
	Item         string     `json:"item"`
	Qty          float64    `json:"qty"`
	PricePerUnit float64    `json:"price_per_unit"`
	TotalPrice   float64    `json:"total_price"`
	Side         value.Side `json:"side"`
	Breakdown    Breakdown  `json:"breakdown"`
	// Ts — время сделки в миллисекундах unix.
	Ts int64 `json:"ts"`
}
