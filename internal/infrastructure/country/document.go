package country

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"rp_market/internal/domain/entity"
	"rp_market/internal/domain/value"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// document — поля файла страны, которые нужны рынку. Файлы генерируются
// разными скриптами, поэтому почти всё необязательно.
type document struct {
	ID          string              `json:"id"`
	IsoA3       string              `json:"iso_a3"`
	Name        string              `json:"name"`
	Title       string              `json:"title"`
	CountryName string              `json:"country_name"`
	Continent   string              `json:"continent"`
	Region      string              `json:"region"`
	Population  jsoniter.RawMessage `json:"population"`
	Economy     *struct {
		Resources jsoniter.RawMessage `json:"resources"`
	} `json:"economy"`
	Resources    jsoniter.RawMessage `json:"resources"`
	RawResources jsoniter.RawMessage `json:"raw_resources"`
	Borders      jsoniter.RawMessage `json:"borders"`
	Geography    *struct {
		Continent string              `json:"continent"`
		Borders   jsoniter.RawMessage `json:"borders"`
	} `json:"geography"`
}

func (d document) toDomain(fileName string) (entity.Country, error) {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))

	var resources value.Resources
	if raw := d.resourcesRaw(); raw != nil {
		if err := resources.UnmarshalJSON(raw); err != nil {
			return entity.Country{}, err
		}
	}

	continent := firstNonEmpty(d.Continent, d.Region)
	if continent == "" && d.Geography != nil {
		continent = d.Geography.Continent
	}

	return entity.Country{
		ID:         strings.ToLower(firstNonEmpty(d.ID, d.IsoA3, base)),
		Name:       firstNonEmpty(d.Name, d.Title, d.CountryName, base),
		Continent:  strings.ToLower(continent),
		Population: parsePopulation(d.Population),
		Resources:  resources,
		Borders:    d.borders(),
	}, nil
}

// resourcesRaw: economy.resources, затем resources, затем raw_resources.
func (d document) resourcesRaw() []byte {
	candidates := []jsoniter.RawMessage{d.Resources, d.RawResources}
	if d.Economy != nil {
		candidates = append([]jsoniter.RawMessage{d.Economy.Resources}, candidates...)
	}

	for _, raw := range candidates {
		if present(raw) {
			return raw
		}
	}

	return nil
}

func (d document) borders() []string {
	raw := d.Borders
	if d.Geography != nil && present(d.Geography.Borders) {
		raw = d.Geography.Borders
	}

	if !present(raw) {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		var joined string
		if err := json.Unmarshal(raw, &joined); err != nil {
			return nil
		}
		list = strings.Split(joined, ",")
	}

	borders := make([]string, 0, len(list))
	for _, b := range list {
		if b = strings.ToLower(strings.TrimSpace(b)); b != "" {
			borders = append(borders, b)
		}
	}

	return borders
}

func parsePopulation(raw jsoniter.RawMessage) float64 {
	if !present(raw) {
		return 0
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return number
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		n, _ := strconv.ParseFloat(strings.TrimSpace(text), 64)
		return n
	}

	var wrapped struct {
		Value float64 `json:"value"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Value
	}

	return 0
}

func present(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return ""
}
