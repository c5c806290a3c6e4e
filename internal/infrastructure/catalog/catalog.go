// Package catalog — справочник товаров: встроенный или из YAML-файла.
package catalog

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"rp_market/internal/domain/entity"
)

type Catalog struct {
	items []entity.CatalogItem
	byID  map[string]entity.CatalogItem
}

type file struct {
	Items []entity.CatalogItem `yaml:"items"`
}

// Default — товары, с которых стартует игра.
func Default() *Catalog {
	return New([]entity.CatalogItem{
		{ID: "oil", Label: "Oil", Unit: "barrel", Icon: "🛢️", Category: "energy"},
		{ID: "iron", Label: "Iron", Unit: "ton", Icon: "⛓️", Category: "raw"},
	})
}

// New нормализует записи: имя берётся из label, затем из name, затем из id.
// Записи без id и повторы отбрасываются.
func New(items []entity.CatalogItem) *Catalog {
	c := &Catalog{byID: make(map[string]entity.CatalogItem, len(items))}

	for _, item := range items {
		item.ID = strings.TrimSpace(item.ID)
		if item.ID == "" {
			continue
		}
		if _, dup := c.byID[item.ID]; dup {
			continue
		}

		switch {
		case item.Label != "":
			item.Name = item.Label
		case item.Name == "":
			item.Name = item.ID
		}

		c.byID[item.ID] = item
		c.items = append(c.items, item)
	}

	slices.SortFunc(c.items, func(a, b entity.CatalogItem) int {
		return strings.Compare(a.ID, b.ID)
	})

	return c
}

// Load читает каталог из YAML. Пустой путь даёт встроенный каталог.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal %s: %w", path, err)
	}

	for _, item := range f.Items {
		if item.BasePrice != nil && *item.BasePrice <= 0 {
			return nil, fmt.Errorf("item %q: basePrice must be positive", item.ID)
		}
	}

	return New(f.Items), nil
}

func (c *Catalog) Items(_ context.Context) ([]entity.CatalogItem, error) {
	return slices.Clone(c.items), nil
}

func (c *Catalog) Item(_ context.Context, itemID string) (entity.CatalogItem, bool) {
	item, ok := c.byID[itemID]
	return item, ok
}
