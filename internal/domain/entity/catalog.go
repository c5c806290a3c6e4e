package entity

// CatalogItem — справочные данные товара для интерфейса.
type CatalogItem struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Label     string   `json:"label,omitempty" yaml:"label"`
	Unit      string   `json:"unit,omitempty" yaml:"unit"`
	Icon      string   `json:"icon,omitempty" yaml:"icon"`
	Category  string   `json:"category,omitempty" yaml:"category"`
	BasePrice *float64 `json:"basePrice,omitempty" yaml:"basePrice"`
}
