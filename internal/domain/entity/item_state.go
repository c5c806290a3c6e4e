package entity

// ItemState — агрегированное состояние рынка по одному товару.
type ItemState struct {
	Stock  float64 `json:"stock" db:"stock"`
	Demand float64 `json:"demand" db:"demand"`
	Trend  float64 `json:"trend" db:"trend"`
}

// MarketState — снимок рынка: id товара -> состояние.
type MarketState map[string]ItemState

// Item возвращает состояние товара; отсутствующий товар считается нулевым.
func (s MarketState) Item(itemID string) ItemState {
	if s == nil {
		return ItemState{}
	}

	return s[itemID]
}

func (s MarketState) Clone() MarketState {
	clone := make(MarketState, len(s))
	for id, item := range s {
		clone[id] = item
	}

	return clone
}
