// Package country ищет ресурсный профиль страны по файлам map/world/countries.
package country

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"rp_market/internal/domain/entity"
	"rp_market/pkg/contextx"
	"rp_market/pkg/logx"
)

const indexKey = "index"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// FileLookup индексирует страны по id, имени и имени файла (в нижнем регистре).
// Индекс перестраивается не чаще раза в ttl.
type FileLookup struct {
	dir   string
	cache *cache.Cache
	group singleflight.Group
}

func NewFileLookup(dir string, ttl time.Duration) *FileLookup {
	return &FileLookup{
		dir:   dir,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Lookup никогда не возвращает ошибку: неизвестная страна или нечитаемые файлы дают промах.
func (l *FileLookup) Lookup(ctx context.Context, countryID string) (entity.Country, bool) {
	key := strings.ToLower(strings.TrimSpace(countryID))
	if key == "" {
		return entity.Country{}, false
	}

	country, ok := l.index(ctx)[key]

	return country, ok
}

// Invalidate сбрасывает индекс; следующий Lookup перечитает директорию.
func (l *FileLookup) Invalidate() {
	l.cache.Delete(indexKey)
}

// Refresh перечитывает директорию сразу и возвращает число ключей в индексе.
func (l *FileLookup) Refresh(ctx context.Context) int {
	index := l.build(ctx)
	l.cache.SetDefault(indexKey, index)

	return len(index)
}

func (l *FileLookup) index(ctx context.Context) map[string]entity.Country {
	if cached, ok := l.cache.Get(indexKey); ok {
		return cached.(map[string]entity.Country) //nolint:forcetypeassert
	}

	built, _, _ := l.group.Do(indexKey, func() (any, error) {
		index := l.build(ctx)
		l.cache.SetDefault(indexKey, index)
		return index, nil
	})

	return built.(map[string]entity.Country) //nolint:forcetypeassert
}

func (l *FileLookup) build(ctx context.Context) map[string]entity.Country {
	index := make(map[string]entity.Country)

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		logger(ctx).Warn("countries dir unreadable", logx.FieldPath, l.dir, logx.Error(err))
		return index
	}

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}

		path := filepath.Join(l.dir, e.Name())

		country, err := readCountry(path)
		if err != nil {
			logger(ctx).Warn("country file skipped", logx.FieldPath, path, logx.Error(err))
			continue
		}

		base := strings.ToLower(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))

		for _, key := range []string{strings.ToLower(country.ID), strings.ToLower(country.Name), base} {
			if key != "" {
				index[key] = country
			}
		}
	}

	logger(ctx).Debug("countries indexed", logx.FieldPath, l.dir, "count", len(index))

	return index
}

func readCountry(path string) (entity.Country, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Country{}, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return entity.Country{}, err
	}

	return doc.toDomain(path)
}
