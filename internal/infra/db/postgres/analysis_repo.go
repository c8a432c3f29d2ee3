package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"

	domain "github.com/bryanwahyu/hemolab/internal/domain/analysis"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

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
    id            VARCHAR(36) PRIMARY KEY,
    user_uuid     VARCHAR(36) NOT NULL,
    query         TEXT NOT NULL,
    analysis_type VARCHAR(32) NOT NULL,
    filename      VARCHAR(255) NOT NULL,
    file_size     BIGINT NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS analysis_results (
    request_id  VARCHAR(36) PRIMARY KEY REFERENCES analysis_requests(id),
    raw_text    TEXT NOT NULL,
    archive_url VARCHAR(500) NOT NULL DEFAULT '',
    duration_ms BIGINT NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_requests_user ON analysis_requests (user_uuid, created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) SaveRequest(ctx context.Context, req *domain.Request) error {
	const q = `
INSERT INTO analysis_requests (id, user_uuid, query, analysis_type, filename, file_size, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7);
`
	created := req.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		req.ID, req.UserUUID, req.Query, req.AnalysisType, req.Filename, req.FileSize, created,
	)
	return err
}

func (r *AnalysisRepository) SaveResult(ctx context.Context, res *domain.Result) error {
	const q = `
INSERT INTO analysis_results (request_id, raw_text, archive_url, duration_ms, created_at)
VALUES ($1,$2,$3,$4,$5);
`
	created := res.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		res.RequestID, res.RawText, res.ArchiveURL, res.DurationMS, created,
	)
	return err
}

func (r *AnalysisRepository) Get(ctx context.Context, id domain.RequestID) (*domain.Record, error) {
	const q = `
SELECT r.id, r.user_uuid, r.query, r.analysis_type, r.filename, r.file_size, r.created_at,
       res.raw_text, res.archive_url, res.duration_ms, res.created_at
FROM analysis_requests r
LEFT JOIN analysis_results res ON res.request_id = r.id
WHERE r.id = $1 LIMIT 1;
`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rec, err
}

func (r *AnalysisRepository) ListByUser(ctx context.Context, userUUID string, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT r.id, r.user_uuid, r.query, r.analysis_type, r.filename, r.file_size, r.created_at,
       res.raw_text, res.archive_url, res.duration_ms, res.created_at
FROM analysis_requests r
LEFT JOIN analysis_results res ON res.request_id = r.id
WHERE r.user_uuid = $1
ORDER BY r.created_at DESC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, userUUID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var rec domain.Record
	var rawText, archiveURL sql.NullString
	var durationMS sql.NullInt64
	var resCreated sql.NullTime

	if err := row.Scan(
		&rec.Request.ID, &rec.Request.UserUUID, &rec.Request.Query, &rec.Request.AnalysisType,
		&rec.Request.Filename, &rec.Request.FileSize, &rec.Request.CreatedAt,
		&rawText, &archiveURL, &durationMS, &resCreated,
	); err != nil {
		return nil, err
	}
	if rawText.Valid {
		rec.Result = &domain.Result{
			RequestID:  rec.Request.ID,
			RawText:    rawText.String,
			ArchiveURL: archiveURL.String,
			DurationMS: durationMS.Int64,
			CreatedAt:  resCreated.Time,
		}
	}
	return &rec, nil
}
