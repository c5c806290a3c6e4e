package connectors

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"rp_market/pkg/logx"
)

// SQLite открывает файл базы через gorm, создавая каталог при необходимости.
type SQLite struct {
	value *gorm.DB
	Path  string
	init  sync.Once
}

func (s *SQLite) Client(ctx context.Context) *gorm.DB {
	s.init.Do(func() {
		if dir := filepath.Dir(s.Path); dir != "" {
			lo.Must0(os.MkdirAll(dir, 0o755)) //nolint:mnd
		}

		s.value = lo.Must(gorm.Open(sqlite.Open(s.Path), &gorm.Config{
			//nolint:exhaustruct
			Logger: gormlogger.Discard,
		}))

		logger(ctx).Info("sqlite opened", slog.String("path", s.Path))
	})

	return s.value
}

func (s *SQLite) Close(ctx context.Context) {
	db, err := s.value.DB()
	if err != nil {
		logger(ctx).Error("sqliteClient.DB", logx.Error(err))
		return
	}

	if err := db.Close(); err != nil {
		logger(ctx).Error("sqliteClient.Close", logx.Error(err))
	}

	logger(ctx).Info("sqlite closed", slog.String("path", s.Path))
}
