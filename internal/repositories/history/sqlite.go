package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/synthscan/synthscan/internal/dbx"
	"github.com/synthscan/synthscan/internal/models"
)

// rowOverheadBytes approximates the fixed per-row cost (timestamps, index
// entry, row header) added on top of the variable-length columns when a
// record's size is accounted against the storage budget.
const rowOverheadBytes = 64

// RecordSize returns the number of bytes a record is accounted for when
// persisted. Insert stores this same figure in the size_bytes column, so the
// budget check and the stored usage can never disagree.
func RecordSize(rec *models.Record) (int64, error) {
	verdictJSON, err := json.Marshal(rec.Verdict)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal verdict: %w", err)
	}
	n := len(rec.Id) + len(rec.FileName) + len(rec.ContentType) + len(rec.Preview) + len(verdictJSON)
	return int64(n) + rowOverheadBytes, nil
}

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Insert stores a record. The caller supplies the accounted size, usually
// from RecordSize on the exact record being written.
func (r *SQLiteRepository) Insert(ctx context.Context, rec *models.Record, sizeBytes int64) error {
	verdictJSON, err := json.Marshal(rec.Verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	query := `INSERT INTO analyses (id, created_at, file_name, content_type, preview, verdict_json, size_bytes)
			values (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		rec.Id, rec.CreatedAt.UnixMilli(), rec.FileName, rec.ContentType, rec.Preview, string(verdictJSON), sizeBytes)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// List returns all records newest first. A row whose verdict JSON no longer
// parses is skipped; losing one corrupted row must not take the whole
// history down with it.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Record, error) {
	query := `select id, created_at, file_name, content_type, preview, verdict_json
			from analyses order by created_at desc, rowid desc`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []models.Record
	for rows.Next() {
		item, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// scanRecord reads one row, returning (nil, nil) for rows with undecodable
// verdict content.
func scanRecord(rows *sql.Rows) (*models.Record, error) {
	var rec models.Record
	var createdAt int64
	var verdictJSON string
	if err := rows.Scan(&rec.Id, &createdAt, &rec.FileName, &rec.ContentType, &rec.Preview, &verdictJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(verdictJSON), &rec.Verdict); err != nil {
		return nil, nil
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &rec, nil
}

// GetByID returns a single record by its identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Record, error) {
	query := `select id, created_at, file_name, content_type, preview, verdict_json
			from analyses where id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	var rec models.Record
	var createdAt int64
	var verdictJSON string
	err := row.Scan(&rec.Id, &createdAt, &rec.FileName, &rec.ContentType, &rec.Preview, &verdictJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select record: %w", err)
	}
	if err := json.Unmarshal([]byte(verdictJSON), &rec.Verdict); err != nil {
		return nil, fmt.Errorf("failed to decode verdict for %s: %w", id, err)
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &rec, nil
}

// DeleteByID removes a record. Zero affected rows is fine: removal is
// idempotent.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `delete from analyses where id=?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// StoredBytes returns the summed accounted size of all records.
func (r *SQLiteRepository) StoredBytes(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `select coalesce(sum(size_bytes), 0) from analyses`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum storage usage: %w", err)
	}
	return total, nil
}
