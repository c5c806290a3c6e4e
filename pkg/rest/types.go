// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// QuoteRequest Запрос котировки
type QuoteRequest struct {
	ItemID string `json:"itemId" validate:"max=128"`

	// Qty Количество, по умолчанию 1
	Qty       *Quantity `json:"qty,omitempty"`
	CountryID string    `json:"countryId,omitempty" validate:"max=128"`
}

// QuoteResponse Котировка
type QuoteResponse struct {
	Price     float64   `json:"price"`
	Breakdown Breakdown `json:"breakdown"`
}

// TradeRequest Запрос сделки
type TradeRequest struct {
	// Actor Если пусто, берется из X-User-Id, затем "anon"
	Actor     string   `json:"actor,omitempty" validate:"max=64"`
	ItemID    string   `json:"itemId" validate:"max=128"`
	Qty       Quantity `json:"qty"`
	CountryID string   `json:"countryId,omitempty" validate:"max=128"`
	Side      string   `json:"side"`
}

// TradeResponse Результат сделки
type TradeResponse struct {
	Tx Transaction `json:"tx"`
}

// Breakdown Множители цены
type Breakdown struct {
	Base           float64 `json:"base"`
	SupplyFactor   float64 `json:"supplyFactor"`
	DemandFactor   float64 `json:"demandFactor"`
	QtyImpact      float64 `json:"qtyImpact"`
	TrendFactor    float64 `json:"trendFactor"`
	CountryFactor  float64 `json:"countryFactor"`
	ScarcityFactor float64 `json:"scarcityFactor"`
}

// Transaction Запись журнала сделок
type Transaction struct {
	ID           string    `json:"id"`
	Actor        string    `json:"actor"`
	Country      *string   `json:"country"`
	Item         string    `json:"item"`
	Qty          float64   `json:"qty"`
	PricePerUnit float64   `json:"price_per_unit"`
	TotalPrice   float64   `json:"total_price"`
	Side         string    `json:"side"`
	Breakdown    Breakdown `json:"breakdown"`
	Ts           int64     `json:"ts"`
}

// ItemState Состояние товара на рынке
type ItemState struct {
	Stock  float64 `json:"stock"`
	Demand float64 `json:"demand"`
	Trend  float64 `json:"trend"`
}

// SnapshotResponse Снимок рынка
type SnapshotResponse struct {
	State  map[string]ItemState `json:"state"`
	Recent []Transaction        `json:"recent"`
}

// CatalogItem Товар каталога
type CatalogItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Label     string   `json:"label,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	Icon      string   `json:"icon,omitempty"`
	Category  string   `json:"category,omitempty"`
	BasePrice *float64 `json:"basePrice,omitempty"`
}

// RootResponse Список доступных ручек
type RootResponse struct {
	Endpoints []string `json:"endpoints"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	// SupportID Идентификатор запроса для поддержки
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
