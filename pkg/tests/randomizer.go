// Package tests holds helpers shared by package tests.
package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Float64 func() float64
	Bool    func() bool
	// Intn returns a value in [0, n).
	Intn func(n int) int
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		Intn:    random.Intn,
	}
}

// Side returns "buy" or "sell".
func (r Randomizer) Side() string {
	if r.Bool() {
		return "buy"
	}

	return "sell"
}
