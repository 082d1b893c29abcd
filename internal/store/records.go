package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveRecord inserts an extraction record and returns its id.
func (s *SQLiteStore) SaveRecord(ctx context.Context, r *Record) (int64, error) {
	if r == nil {
		return 0, fmt.Errorf("nil record")
	}
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO records (source, transcript, profile_json, confidence_json, completion, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Source, r.Transcript, r.ProfileJSON, r.ConfidenceJSON, r.Completion, createdAt)
	if err != nil {
		return 0, fmt.Errorf("inserting record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting record id: %w", err)
	}
	r.ID = id
	r.CreatedAt = createdAt
	return id, nil
}

// GetRecord fetches one record by id.
func (s *SQLiteStore) GetRecord(ctx context.Context, id int64) (*Record, error) {
	r := &Record{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, transcript, profile_json, confidence_json, completion, created_at
		 FROM records WHERE id = ?`, id).
		Scan(&r.ID, &r.Source, &r.Transcript, &r.ProfileJSON, &r.ConfidenceJSON, &r.Completion, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying record %d: %w", id, err)
	}
	return r, nil
}

// ListRecords returns records newest first.
func (s *SQLiteStore) ListRecords(ctx context.Context, opts ListOpts) ([]*Record, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, transcript, profile_json, confidence_json, completion, created_at
		 FROM records ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		r := &Record{}
		if err := rows.Scan(&r.ID, &r.Source, &r.Transcript, &r.ProfileJSON, &r.ConfidenceJSON, &r.Completion, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteRecord removes a record by id.
func (s *SQLiteStore) DeleteRecord(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %d: %w", id, ErrNotFound)
	}
	return nil
}
