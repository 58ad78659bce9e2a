package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Call statuses.
const (
	StatusOK               = "ok"
	StatusTranslationError = "translation_error"
	StatusConversionError  = "conversion_error"
)

// Call is one finished conversion call.
type Call struct {
	ID         string
	Direction  string
	SourceType string
	TargetType string
	Status     string
	ErrorCode  string
	Error      string
	Seq        int64
}

// Translation is one journaled boundary crossing. Value is the canonical
// JSON of the native value; it is empty when the crossing failed.
type Translation struct {
	ID           string
	CallID       string
	Seq          int64
	Operation    string
	Class        string
	Variant      string
	ValueID      string
	Value        string
	ErrorCode    string
	ErrorMessage string
}

// ErrCallNotFound is returned by ReadCall for an unknown call ID.
var ErrCallNotFound = errors.New("call not found")

// WriteTranslation inserts a translation record. Duplicate IDs are ignored.
func (s *Store) WriteTranslation(ctx context.Context, t Translation) error {
	if t.ID == "" || t.CallID == "" {
		return fmt.Errorf("write translation: id and call id are required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO translations
		(id, call_id, seq, operation, class, variant, value_id, value, error_code, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		t.ID,
		t.CallID,
		t.Seq,
		t.Operation,
		t.Class,
		t.Variant,
		t.ValueID,
		t.Value,
		t.ErrorCode,
		t.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("write translation: %w", err)
	}
	return nil
}

// WriteCall inserts a finished call. Duplicate IDs are ignored.
func (s *Store) WriteCall(ctx context.Context, c Call) error {
	if c.ID == "" {
		return fmt.Errorf("write call: id is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calls
		(id, direction, source_type, target_type, status, error_code, error, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		c.ID,
		c.Direction,
		c.SourceType,
		c.TargetType,
		c.Status,
		c.ErrorCode,
		c.Error,
		c.Seq,
	)
	if err != nil {
		return fmt.Errorf("write call: %w", err)
	}
	return nil
}

// ReadCall returns a call and its translations ordered by seq.
func (s *Store) ReadCall(ctx context.Context, callID string) (Call, []Translation, error) {
	var c Call
	err := s.db.QueryRowContext(ctx, `
		SELECT id, direction, source_type, target_type, status, error_code, error, seq
		FROM calls
		WHERE id = ?
	`, callID).Scan(&c.ID, &c.Direction, &c.SourceType, &c.TargetType, &c.Status, &c.ErrorCode, &c.Error, &c.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return Call{}, nil, fmt.Errorf("%w: %s", ErrCallNotFound, callID)
	}
	if err != nil {
		return Call{}, nil, fmt.Errorf("read call: %w", err)
	}

	translations, err := s.ReadTranslations(ctx, callID)
	if err != nil {
		return Call{}, nil, err
	}
	return c, translations, nil
}

// ReadTranslations returns the translations of a call ordered by seq.
// Returns an empty slice, not nil, when there are none.
func (s *Store) ReadTranslations(ctx context.Context, callID string) ([]Translation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, call_id, seq, operation, class, variant, value_id, value, error_code, error_message
		FROM translations
		WHERE call_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, callID)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}
	defer rows.Close()

	translations := []Translation{}
	for rows.Next() {
		var t Translation
		if err := rows.Scan(&t.ID, &t.CallID, &t.Seq, &t.Operation, &t.Class, &t.Variant,
			&t.ValueID, &t.Value, &t.ErrorCode, &t.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		translations = append(translations, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translations: %w", err)
	}
	return translations, nil
}

// ListCalls returns up to limit calls, newest first. An empty status lists
// every call.
func (s *Store) ListCalls(ctx context.Context, status string, limit int) ([]Call, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, direction, source_type, target_type, status, error_code, error, seq
		FROM calls
		WHERE ? = '' OR status = ?
		ORDER BY id COLLATE BINARY DESC
		LIMIT ?
	`, status, status, limit)
	if err != nil {
		return nil, fmt.Errorf("query calls: %w", err)
	}
	defer rows.Close()

	calls := []Call{}
	for rows.Next() {
		var c Call
		if err := rows.Scan(&c.ID, &c.Direction, &c.SourceType, &c.TargetType, &c.Status, &c.ErrorCode, &c.Error, &c.Seq); err != nil {
			return nil, fmt.Errorf("scan call: %w", err)
		}
		calls = append(calls, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calls: %w", err)
	}
	return calls, nil
}
