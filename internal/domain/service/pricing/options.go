package pricing

import "math"

const (
	DefaultBasePrice      = 100.0
	DefaultMinPrice       = 0.01
	DefaultMaxPrice       = 1e9
	DefaultScarcityFactor = 1.0
)

// Options — параметры ценообразования.
type Options struct {
	BasePrice      float64
	MinPrice       float64
	MaxPrice       float64
	ScarcityFactor float64
}

func DefaultOptions() Options {
	return Options{
		BasePrice:      DefaultBasePrice,
		MinPrice:       DefaultMinPrice,
		MaxPrice:       DefaultMaxPrice,
		ScarcityFactor: DefaultScarcityFactor,
	}
}

// Overrides — частичное переопределение параметров. nil оставляет значение как есть.
type Overrides struct {
	BasePrice      *float64
	MinPrice       *float64
	MaxPrice       *float64
	ScarcityFactor *float64
}

// Apply накладывает переопределения поверх opts.
func (o Overrides) Apply(opts Options) Options {
	if o.BasePrice != nil {
		opts.BasePrice = *o.BasePrice
	}
	if o.MinPrice != nil {
		opts.MinPrice = *o.MinPrice
	}
	if o.MaxPrice != nil {
		opts.MaxPrice = *o.MaxPrice
	}
	if o.ScarcityFactor != nil {
		opts.ScarcityFactor = *o.ScarcityFactor
	}

	return opts
}

// sanitize заменяет нечисловые значения на значения по умолчанию.
func (o Options) sanitize() Options {
	return Options{
		BasePrice:      finiteOr(o.BasePrice, DefaultBasePrice),
		MinPrice:       finiteOr(o.MinPrice, DefaultMinPrice),
		MaxPrice:       finiteOr(o.MaxPrice, DefaultMaxPrice),
		ScarcityFactor: finiteOr(o.ScarcityFactor, DefaultScarcityFactor),
	}
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}

	return v
}

// nonNegative приводит NaN, бесконечности и отрицательные значения к нулю.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}

	return v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
