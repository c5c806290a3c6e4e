package rest

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Quantity accepts a JSON number or a numeric string. Anything else decodes
// to NaN so that the engine reports it as an invalid quantity instead of a
// malformed body.
type Quantity float64

func (q Quantity) Float64() float64 {
	return float64(q)
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(q))
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	iter := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowIterator(data)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnIterator(iter)

	switch iter.WhatIsNext() {
	case jsoniter.NumberValue:
		*q = Quantity(iter.ReadFloat64())
	case jsoniter.StringValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(iter.ReadString()), 64)
		if err != nil {
			f = math.NaN()
		}

		*q = Quantity(f)
	default:
		iter.Skip()
		*q = Quantity(math.NaN())
	}

	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return fmt.Errorf("quantity: %w", iter.Error)
	}

	return nil
}
