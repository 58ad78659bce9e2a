package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/epsg"
)

// ImportEPSG upserts entries in one transaction and returns how many rows
// were written.
func (s *Store) ImportEPSG(ctx context.Context, entries []epsg.Entry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("import epsg: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO epsg_codes (code, attributes, line)
		VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET attributes = excluded.attributes, line = excluded.line
	`)
	if err != nil {
		return 0, fmt.Errorf("import epsg: prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		attrs, err := marshalAttributes(e.Attributes)
		if err != nil {
			return 0, fmt.Errorf("import epsg %s: %w", e.Code, err)
		}
		if _, err := stmt.ExecContext(ctx, e.Code, attrs, e.Line); err != nil {
			return 0, fmt.Errorf("import epsg %s: %w", e.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import epsg: commit: %w", err)
	}
	return len(entries), nil
}

// LookupEPSG returns the stored entry for code. The boolean is false when
// the code is unknown.
func (s *Store) LookupEPSG(ctx context.Context, code string) (epsg.Entry, bool, error) {
	var attrs string
	e := epsg.Entry{Code: code}
	err := s.db.QueryRowContext(ctx, `
		SELECT attributes, line FROM epsg_codes WHERE code = ?
	`, code).Scan(&attrs, &e.Line)
	if errors.Is(err, sql.ErrNoRows) {
		return epsg.Entry{}, false, nil
	}
	if err != nil {
		return epsg.Entry{}, false, fmt.Errorf("lookup epsg %s: %w", code, err)
	}
	if err := json.Unmarshal([]byte(attrs), &e.Attributes); err != nil {
		return epsg.Entry{}, false, fmt.Errorf("lookup epsg %s: decode attributes: %w", code, err)
	}
	return e, true, nil
}

// CountEPSG returns the number of stored codes.
func (s *Store) CountEPSG(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM epsg_codes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count epsg: %w", err)
	}
	return n, nil
}

func marshalAttributes(attrs map[string]string) (string, error) {
	m := make(map[string]any, len(attrs))
	for k, v := range attrs {
		m[k] = v
	}
	data, err := ccs.MarshalCanonical(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
