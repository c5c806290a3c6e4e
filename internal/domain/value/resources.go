package value

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type ResourcesKind uint8

const (
	ResourcesUnspecified ResourcesKind = iota
	// ResourcesListed — страна экспортирует товар, количество неизвестно.
	ResourcesListed
	// ResourcesQuantified — известно доступное количество по каждому товару.
	ResourcesQuantified
)

// Resources — ресурсный профиль страны. В файлах стран встречается либо
// массив идентификаторов, либо объект id -> количество.
type Resources struct {
	kind       ResourcesKind
	listed     map[string]struct{}
	quantified map[string]float64
}

func UnspecifiedResources() Resources {
	return Resources{}
}

func ListedResources(items ...string) Resources {
	listed := make(map[string]struct{}, len(items))
	for _, item := range items {
		listed[item] = struct{}{}
	}

	return Resources{kind: ResourcesListed, listed: listed}
}

func QuantifiedResources(quantities map[string]float64) Resources {
	quantified := make(map[string]float64, len(quantities))
	for item, qty := range quantities {
		quantified[item] = qty
	}

	return Resources{kind: ResourcesQuantified, quantified: quantified}
}

func (r Resources) Kind() ResourcesKind {
	return r.kind
}

// Lists сообщает, отмечен ли товар в профиле без количества.
func (r Resources) Lists(item string) bool {
	if r.kind != ResourcesListed {
		return false
	}

	_, ok := r.listed[item]
	return ok
}

// Quantity возвращает известное количество товара. ok=false, если товара нет
// в профиле или количество не задано.
func (r Resources) Quantity(item string) (float64, bool) {
	if r.kind != ResourcesQuantified {
		return 0, false
	}

	qty, ok := r.quantified[item]
	return qty, ok
}

func (r Resources) Items() []string {
	var items []string

	switch r.kind {
	case ResourcesListed:
		for item := range r.listed {
			items = append(items, item)
		}
	case ResourcesQuantified:
		for item := range r.quantified {
			items = append(items, item)
		}
	case ResourcesUnspecified:
	}

	slices.Sort(items)

	return items
}

func (r Resources) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case ResourcesListed:
		return json.Marshal(r.Items())
	case ResourcesQuantified:
		return json.Marshal(r.quantified)
	case ResourcesUnspecified:
	}

	return []byte("null"), nil
}

// UnmarshalJSON разбирает все формы, которые встречаются в файлах стран:
//   - ["oil", "iron"] -> Listed;
//   - [{"id": "oil", "qty": 10}, "iron"] -> Quantified, строки считаются как 1;
//   - {"oil": 5000, "iron": null} -> Quantified, нечисловые значения -> 0;
//   - null и прочее -> Unspecified.
func (r *Resources) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) == 0 {
		*r = UnspecifiedResources()
		return nil
	}

	switch data[0] {
	case '[':
		return r.unmarshalArray(data)
	case '{':
		return r.unmarshalObject(data)
	default:
		*r = UnspecifiedResources()
		return nil
	}
}

func (r *Resources) unmarshalArray(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("resources array: %w", err)
	}

	var (
		names      []string
		quantified = map[string]float64{}
		hasObjects bool
	)

	for _, entry := range raw {
		switch v := entry.(type) {
		case string:
			names = append(names, v)
			quantified[v]++
		case map[string]any:
			id, ok := v["id"].(string)
			if !ok || id == "" {
				continue
			}

			hasObjects = true

			qty := toNumber(v["qty"])
			if qty == 0 {
				qty = 1
			}

			quantified[id] += qty
		}
	}

	if hasObjects {
		*r = QuantifiedResources(quantified)
		return nil
	}

	*r = ListedResources(names...)

	return nil
}

func (r *Resources) unmarshalObject(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("resources object: %w", err)
	}

	quantified := make(map[string]float64, len(raw))
	for item, v := range raw {
		quantified[item] = toNumber(v)
	}

	*r = QuantifiedResources(quantified)

	return nil
}

func toNumber(v any) float64 {
	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}

		f = parsed
	case bool:
		if n {
			f = 1
		}
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}
