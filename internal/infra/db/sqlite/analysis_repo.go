package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/bryanwahyu/hemolab/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// SaveRequest inserts a Request row. Requests are immutable, no upsert.
func (r *AnalysisRepository) SaveRequest(ctx context.Context, req *domain.Request) error {
	const q = `
INSERT INTO analysis_requests (id, user_uuid, query, analysis_type, filename, file_size, created_at)
VALUES (?,?,?,?,?,?,?);
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

// SaveResult writes the 1:1 result row for a request.
func (r *AnalysisRepository) SaveResult(ctx context.Context, res *domain.Result) error {
	const q = `
INSERT INTO analysis_results (request_id, raw_text, archive_url, duration_ms, created_at)
VALUES (?,?,?,?,?);
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

// Get returns one request with its result, if any.
func (r *AnalysisRepository) Get(ctx context.Context, id domain.RequestID) (*domain.Record, error) {
	const q = `
SELECT r.id, r.user_uuid, r.query, r.analysis_type, r.filename, r.file_size, r.created_at,
       res.raw_text, res.archive_url, res.duration_ms, res.created_at
FROM analysis_requests r
LEFT JOIN analysis_results res ON res.request_id = r.id
WHERE r.id = ? LIMIT 1;
`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rec, err
}

// ListByUser returns a user's records, newest first.
func (r *AnalysisRepository) ListByUser(ctx context.Context, userUUID string, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT r.id, r.user_uuid, r.query, r.analysis_type, r.filename, r.file_size, r.created_at,
       res.raw_text, res.archive_url, res.duration_ms, res.created_at
FROM analysis_requests r
LEFT JOIN analysis_results res ON res.request_id = r.id
WHERE r.user_uuid = ?
ORDER BY r.created_at DESC
LIMIT ?;
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
