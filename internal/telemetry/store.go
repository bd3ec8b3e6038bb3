package telemetry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ivmanto/site/internal/db"
)

// Store persists data layer events in SQLite. It is a Sink.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

func (s *Store) Name() string {
	return "sqlite"
}

// Publish inserts the event.
func (s *Store) Publish(ctx context.Context, e Event) error {
	params, err := json.Marshal(e.Params)
	if err != nil {
		return fmt.Errorf("marshalling event params: %w", err)
	}

	var clientID, sessionID sql.NullString
	if v := e.Param("client_id"); v != "" {
		clientID = sql.NullString{String: v, Valid: true}
	}
	if v := e.Param("session_id"); v != "" {
		sessionID = sql.NullString{String: v, Valid: true}
	}

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO telemetry_events (id, name, params, page_path, client_id, session_id, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, string(params), e.Param("page_path"), clientID, sessionID,
		ts.UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("inserting telemetry event: %w", err)
	}
	return nil
}

// QueryFilter controls which events List returns.
type QueryFilter struct {
	Name     string
	PagePath string
	Since    *time.Time
	Limit    int
}

// List returns persisted events, newest first.
func (s *Store) List(ctx context.Context, filter QueryFilter) ([]Event, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.Name != "" {
		clauses = append(clauses, "name = ?")
		args = append(args, filter.Name)
	}
	if filter.PagePath != "" {
		clauses = append(clauses, "page_path = ?")
		args = append(args, filter.PagePath)
	}
	if filter.Since != nil {
		clauses = append(clauses, "recorded_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT id, name, params, recorded_at FROM telemetry_events"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY recorded_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying telemetry events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e      Event
			params string
			ts     string
		)
		if err := rows.Scan(&e.ID, &e.Name, &params, &ts); err != nil {
			return nil, fmt.Errorf("scanning telemetry event: %w", err)
		}
		if err := json.Unmarshal([]byte(params), &e.Params); err != nil {
			e.Params = nil
		}
		if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
			e.Timestamp = t
		} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
			e.Timestamp = t
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// DeleteBefore removes events older than the given time and returns the
// number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM telemetry_events WHERE recorded_at < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old telemetry events: %w", err)
	}
	return res.RowsAffected()
}
