package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func Connect(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// sqlite serializes writes; a single connection avoids SQLITE_BUSY churn
	db.SetMaxOpenConns(1)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		return nil, err
	}
	if err := initSchema(ctx2, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS analysis_requests (
    id            TEXT PRIMARY KEY,
    user_uuid     TEXT NOT NULL,
    query         TEXT NOT NULL,
    analysis_type TEXT NOT NULL,
    filename      TEXT NOT NULL,
    file_size     INTEGER NOT NULL DEFAULT 0,
    created_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS analysis_results (
    request_id  TEXT PRIMARY KEY REFERENCES analysis_requests(id),
    raw_text    TEXT NOT NULL,
    archive_url TEXT NOT NULL DEFAULT '',
    duration_ms INTEGER NOT NULL DEFAULT 0,
    created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_requests_user ON analysis_requests(user_uuid, created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}
