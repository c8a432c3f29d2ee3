package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// test ping
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
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_requests (
    id            VARCHAR(36) PRIMARY KEY,
    user_uuid     VARCHAR(36) NOT NULL,
    query         TEXT NOT NULL,
    analysis_type VARCHAR(32) NOT NULL,
    filename      VARCHAR(255) NOT NULL,
    file_size     BIGINT NOT NULL DEFAULT 0,
    created_at    DATETIME NOT NULL,
    INDEX idx_requests_user (user_uuid, created_at)
);`,
		`CREATE TABLE IF NOT EXISTS analysis_results (
    request_id  VARCHAR(36) PRIMARY KEY,
    raw_text    MEDIUMTEXT NOT NULL,
    archive_url VARCHAR(500) NOT NULL DEFAULT '',
    duration_ms BIGINT NOT NULL DEFAULT 0,
    created_at  DATETIME NOT NULL
);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
