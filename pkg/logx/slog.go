package logx

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/lmittmann/tint"
)

var Error = tint.Err //nolint:gochecknoglobals

func Stringer(name string, value fmt.Stringer) slog.Attr {
	return slog.String(name, value.String())
}

// Money пишет денежное значение с двумя знаками, как его видит клиент.
func Money(name string, value float64) slog.Attr {
	return slog.Float64(name, math.Round(value*100)/100)
}
