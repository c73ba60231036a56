package migrations

// The column types for id and created_at differ per driver: MySQL cannot index
// an unbounded TEXT primary key and each engine spells a microsecond timestamp
// differently.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateBookmarks, downCreateBookmarks)
}

func upCreateBookmarks(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS bookmarks (
    id           TEXT PRIMARY KEY,
    title        TEXT NOT NULL,
    bookmark_url TEXT NOT NULL,
    descr        TEXT NOT NULL DEFAULT '',
    rating       INTEGER NOT NULL CHECK (rating BETWEEN 0 AND 5),
    created_at   TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS bookmarks (
    id           VARCHAR(36) PRIMARY KEY,
    title        TEXT NOT NULL,
    bookmark_url TEXT NOT NULL,
    descr        TEXT NOT NULL,
    rating       INTEGER NOT NULL CHECK (rating BETWEEN 0 AND 5),
    created_at   DATETIME(6) NOT NULL
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS bookmarks (
    id           TEXT PRIMARY KEY,
    title        TEXT NOT NULL,
    bookmark_url TEXT NOT NULL,
    descr        TEXT NOT NULL DEFAULT '',
    rating       INTEGER NOT NULL CHECK (rating BETWEEN 0 AND 5),
    created_at   DATETIME NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create bookmarks table: %w", err)
	}
	_, err := tx.ExecContext(ctx, `CREATE INDEX bookmarks_created_at_idx ON bookmarks (created_at)`)
	return err
}

func downCreateBookmarks(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS bookmarks`)
	return err
}
