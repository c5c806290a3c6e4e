// Package dbmigrate applies plain SQL migration files over a database
// connection. Files are applied in lexical order, each in a single Exec.
package dbmigrate

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/jmoiron/sqlx"
)

// FromFiles executes all SQL queries from the files over a database
// connection.
func FromFiles(ctx context.Context, db *sqlx.DB, fileNames ...string) error {
	for _, fileName := range fileNames {
		fileBytes, err := os.ReadFile(fileName)
		if err != nil {
			return fmt.Errorf("os.ReadFile: %w", err)
		}

		if _, err = db.ExecContext(ctx, string(fileBytes)); err != nil {
			return fmt.Errorf("db.ExecContext %s: %w", fileName, err)
		}
	}

	return nil
}

// FromFS executes every file of fsys matching glob, sorted by name.
func FromFS(ctx context.Context, db *sqlx.DB, fsys fs.FS, glob string) error {
	fileNames, err := fs.Glob(fsys, glob)
	if err != nil {
		return fmt.Errorf("fs.Glob: %w", err)
	}

	sort.Strings(fileNames)

	for _, fileName := range fileNames {
		fileBytes, err := fs.ReadFile(fsys, fileName)
		if err != nil {
			return fmt.Errorf("fs.ReadFile: %w", err)
		}

		if _, err = db.ExecContext(ctx, string(fileBytes)); err != nil {
			return fmt.Errorf("db.ExecContext %s: %w", fileName, err)
		}
	}

	return nil
}
