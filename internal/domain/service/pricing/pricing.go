// Package pricing содержит чистые функции ценообразования и пересчёта состояния рынка.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"rp_market/internal/domain/entity"
	"rp_market/internal/domain/value"
)

const (
	listedCountryFactor       = 0.95
	depletedCountryFactor     = 0.98
	abundanceScale            = 10000.0
	buyDemandRate             = 0.1
	sellDemandRate            = 0.05
	trendSensitivity          = 0.5
	maxTrendInfluence         = 0.5
	minScarcity, maxScarcity  = 0.5, 5.0
	minFactor, maxFactor      = 0.5, 3.0
	minCountry, maxCountry    = 0.7, 1.0
	demandWeight, qtyExponent = 1.2, 0.6
)

type Result struct {
	Price     float64
	Breakdown entity.Breakdown
}

// Compute считает цену за единицу товара. Функция не возвращает ошибок:
// некорректные входные данные приводятся к допустимым.
func Compute(itemID string, state entity.ItemState, resources value.Resources, qty float64, opts Options) Result {
	opts = opts.sanitize()

	stock := nonNegative(state.Stock)
	demand := nonNegative(state.Demand)
	trend := finiteOr(state.Trend, 0)
	qty = nonNegative(qty)

	countryFactor := CountryFactor(itemID, resources)

	supplyFactor := clamp(math.Pow((stock+1)/(demand+1), -0.25), minFactor, maxFactor)
	demandFactor := clamp(1+demand/math.Max(1, stock+demand)*demandWeight, minFactor, maxFactor)

	relOrder := 1.0
	if stock > 0 {
		relOrder = qty / (stock + qty)
	}
	qtyImpact := 1 + math.Pow(relOrder, qtyExponent)*2

	trendFactor := 1 + clamp(trend, -maxTrendInfluence, maxTrendInfluence)
	scarcity := clamp(opts.ScarcityFactor, minScarcity, maxScarcity)

	price := opts.BasePrice * supplyFactor * demandFactor * qtyImpact * trendFactor * countryFactor * scarcity
	price = clamp(finiteOr(price, opts.MinPrice), opts.MinPrice, opts.MaxPrice)
	// границы могут быть не кратны копейке, округление не должно их нарушать
	price = clamp(Round(price), opts.MinPrice, opts.MaxPrice)

	return Result{
		Price: price,
		Breakdown: entity.Breakdown{
			Base:           opts.BasePrice,
			SupplyFactor:   supplyFactor,
			DemandFactor:   demandFactor,
			QtyImpact:      qtyImpact,
			TrendFactor:    trendFactor,
			CountryFactor:  countryFactor,
			ScarcityFactor: scarcity,
		},
	}
}

// CountryFactor — скидка для стран, которые сами производят товар.
func CountryFactor(itemID string, resources value.Resources) float64 {
	switch resources.Kind() {
	case value.ResourcesListed:
		if resources.Lists(itemID) {
			return listedCountryFactor
		}
	case value.ResourcesQuantified:
		qty, ok := resources.Quantity(itemID)
		if !ok {
			return 1
		}
		if qty > 0 {
			return clamp(0.85+0.15*math.Exp(-qty/abundanceScale), minCountry, maxCountry)
		}

		return depletedCountryFactor
	case value.ResourcesUnspecified:
	}

	return 1
}

// Next возвращает состояние товара после сделки.
func Next(state entity.ItemState, qty float64, side value.Side) entity.ItemState {
	stock := nonNegative(state.Stock)
	demand := nonNegative(state.Demand)
	trend := finiteOr(state.Trend, 0)
	qty = nonNegative(qty)

	var (
		newStock    float64
		demandDelta float64
	)

	switch side {
	case value.SideBuy:
		newStock = math.Max(0, stock-qty)
		demandDelta = qty * buyDemandRate
	case value.SideSell:
		newStock = stock + qty
		demandDelta = -qty * sellDemandRate
	default:
		return entity.ItemState{Stock: stock, Demand: demand, Trend: trend}
	}

	return entity.ItemState{
		Stock:  newStock,
		Demand: math.Max(0, demand+demandDelta),
		Trend:  trend + demandDelta/math.Max(1, stock+qty)*trendSensitivity,
	}
}

// Round округляет денежную сумму до копеек, половина — вверх.
func Round(amount float64) float64 {
	amount = finiteOr(amount, 0)

	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// Total — стоимость сделки, округлённая до копеек.
func Total(price, qty float64) float64 {
	price, qty = finiteOr(price, 0), finiteOr(qty, 0)

	return decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(qty)).Round(2).InexactFloat64()
}
