package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"homework_bot/internal/model"
	"homework_bot/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Journal backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Append inserts a cycle entry and populates its ID.
// A zero CreatedAt is set to the current time.
func (s *SQLite) Append(ctx context.Context, e *model.CycleEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	created := e.CreatedAt.UTC().Format(timeLayout)

	var failure *string
	if e.Failure != "" {
		v := string(e.Failure)
		failure = &v
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO poll_cycles (cursor_before, cursor_after, outcome, failure, message, notified, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.CursorBefore, e.CursorAfter, string(e.Outcome), failure, e.Message, boolToInt(e.Notified), created,
	)
	if err != nil {
		return fmt.Errorf("insert poll cycle: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	e.ID = id
	e.CreatedAt, _ = time.Parse(timeLayout, created)
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *SQLite) Recent(ctx context.Context, limit int) ([]model.CycleEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, cursor_before, cursor_after, outcome, failure, message, notified, created_at
		 FROM poll_cycles ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query poll cycles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.CycleEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type scannable interface {
	Scan(dest ...any) error
}

func scanEntry(row scannable) (model.CycleEntry, error) {
	var e model.CycleEntry
	var outcome, created string
	var failure sql.NullString
	var notified int
	err := row.Scan(&e.ID, &e.CursorBefore, &e.CursorAfter, &outcome, &failure, &e.Message, &notified, &created)
	if err != nil {
		return e, fmt.Errorf("scan poll cycle: %w", err)
	}
	e.Outcome = model.OutcomeKind(outcome)
	if failure.Valid {
		e.Failure = model.FailureKind(failure.String)
	}
	e.Notified = notified == 1
	e.CreatedAt, _ = time.Parse(timeLayout, created)
	return e, nil
}
