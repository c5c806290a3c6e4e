package dbmigrate_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"rp_market/pkg/dbmigrate"
)

func TestFromFS(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		fsys    fstest.MapFS
		expect  func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "Applies files in name order",
			fsys: fstest.MapFS{
				"migrations/002_b.sql": {Data: []byte("CREATE TABLE b (id INT);")},
				"migrations/001_a.sql": {Data: []byte("CREATE TABLE a (id INT);")},
				"migrations/readme.md": {Data: []byte("skip")},
			},
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a (id INT);")).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id INT);")).WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "Stops on the first failing file",
			fsys: fstest.MapFS{
				"migrations/001_a.sql": {Data: []byte("CREATE TABLE a (id INT);")},
				"migrations/002_b.sql": {Data: []byte("CREATE TABLE b (id INT);")},
			},
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a (id INT);")).WillReturnError(errors.New("syntax error"))
			},
			wantErr: true,
		},
		{
			name:   "No matching files",
			fsys:   fstest.MapFS{},
			expect: func(sqlmock.Sqlmock) {},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)

			db, mock, err := sqlmock.New()
			rq.NoError(err)

			defer db.Close()

			tc.expect(mock)

			err = dbmigrate.FromFS(context.Background(), sqlx.NewDb(db, "pgx"), tc.fsys, "migrations/*.sql")
			if tc.wantErr {
				rq.Error(err)
			} else {
				rq.NoError(err)
			}

			rq.NoError(mock.ExpectationsWereMet())
		})
	}
}

func TestFromFiles(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	dir := t.TempDir()
	fileName := filepath.Join(dir, "001.sql")
	rq.NoError(os.WriteFile(fileName, []byte("SELECT 1;"), 0o600))

	db, mock, err := sqlmock.New()
	rq.NoError(err)

	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("SELECT 1;")).WillReturnResult(sqlmock.NewResult(0, 0))

	rq.NoError(dbmigrate.FromFiles(context.Background(), sqlx.NewDb(db, "pgx"), fileName))
	rq.NoError(mock.ExpectationsWereMet())

	rq.Error(dbmigrate.FromFiles(context.Background(), sqlx.NewDb(db, "pgx"), filepath.Join(dir, "missing.sql")))
}
