package value

import (
	"errors"
	"fmt"
)

// Side — направление сделки с точки зрения игрока.
type Side string

const (
	// SideBuy — игрок покупает у рынка, запас рынка уменьшается.
	SideBuy Side = "buy"
	// SideSell — игрок продаёт рынку, запас рынка растёт.
	SideSell Side = "sell"
)

var ErrInvalidSide = errors.New(`side must be "buy" or "sell"`)

// ParseSide принимает только точные значения, без нормализации регистра.
func ParseSide(s string) (Side, error) {
	side := Side(s)
	if !side.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidSide)
	}
	return side, nil
}

func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

func (s Side) String() string {
	return string(s)
}
