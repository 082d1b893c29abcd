package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveMapping upserts a mapping template by name.
func (s *SQLiteStore) SaveMapping(ctx context.Context, m *Mapping) error {
	if m == nil {
		return fmt.Errorf("nil mapping")
	}
	if m.Name == "" {
		return fmt.Errorf("mapping name is required")
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mappings (name, spec, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET spec = excluded.spec, updated_at = excluded.updated_at`,
		m.Name, m.Spec, now, now)
	if err != nil {
		return fmt.Errorf("saving mapping %q: %w", m.Name, err)
	}
	return nil
}

// GetMapping fetches one mapping by name.
func (s *SQLiteStore) GetMapping(ctx context.Context, name string) (*Mapping, error) {
	m := &Mapping{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, spec, created_at, updated_at FROM mappings WHERE name = ?`, name).
		Scan(&m.ID, &m.Name, &m.Spec, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("mapping %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying mapping %q: %w", name, err)
	}
	return m, nil
}

// ListMappings returns all mappings ordered by name.
func (s *SQLiteStore) ListMappings(ctx context.Context) ([]*Mapping, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, spec, created_at, updated_at FROM mappings ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing mappings: %w", err)
	}
	defer rows.Close()

	var mappings []*Mapping
	for rows.Next() {
		m := &Mapping{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Spec, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// DeleteMapping removes a mapping by name.
func (s *SQLiteStore) DeleteMapping(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM mappings WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting mapping %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("mapping %q: %w", name, ErrNotFound)
	}
	return nil
}
