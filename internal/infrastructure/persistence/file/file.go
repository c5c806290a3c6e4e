// Package file хранит состояние рынка и журнал сделок в JSON-файлах.
// Каждая запись перезаписывает документ целиком через временный файл и rename.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"rp_market/pkg/contextx"
	"rp_market/pkg/logx"
)

const (
	StateFileName  = "state.json"
	LedgerFileName = "ledger.json"

	dirPerm  = 0o755
	filePerm = 0o644
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

// ensureFile создаёт документ с начальным содержимым, если его ещё нет.
func ensureFile(path string, initial any) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Stat: %w", err)
	}

	return writeAtomic(path, initial)
}

// writeAtomic пишет v во временный файл в той же директории, делает fsync и
// переименовывает его поверх path.
func writeAtomic(path string, v any) (err error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Sync: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err = os.Chmod(tmp.Name(), filePerm); err != nil {
		return fmt.Errorf("os.Chmod: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}

// readDocument читает документ в dest. Отсутствующий, нечитаемый или битый
// файл даёт false; вызывающий подставляет пустое значение.
func readDocument(ctx context.Context, path string, dest any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger(ctx).Warn("market document unreadable, using empty", logx.FieldPath, path, logx.Error(err))
		}
		return false
	}

	if len(data) == 0 {
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger(ctx).Warn("market document corrupt, using empty", logx.FieldPath, path, logx.Error(err))
		return false
	}

	return true
}

func ping(path string) error {
	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("os.Stat: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", filepath.Dir(path))
	}

	return nil
}
