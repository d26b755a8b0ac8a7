package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	m "fixtura.dev/pkg/fixtura/internal/model"
	fxpkg "fixtura.dev/pkg/fixtura/pkg"
)

// SQLDialect names a supported SQL backend.
type SQLDialect string

// Supported SQL dialects.
const (
	DialectSQLite   SQLDialect = "sqlite"
	DialectPostgres SQLDialect = "postgres"
)

const (
	defaultSQLitePath  = ".fixtura/events.db"
	defaultPostgresDSN = "postgres://localhost/fixtura?sslmode=disable"
)

type dialect struct {
	driver string
	schema string
	// nullSafeEq compares two nullable values treating NULL as equal to NULL.
	nullSafeEq string
	numbered   bool
}

var dialects = map[SQLDialect]dialect{
	DialectSQLite: {
		driver: "sqlite",
		schema: `CREATE TABLE IF NOT EXISTS events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			root_path TEXT NULL,
			type_name TEXT NOT NULL,
			item_name TEXT NULL,
			payload BLOB NOT NULL,
			recorded_at INTEGER NOT NULL
		)`,
		nullSafeEq: "IS",
	},
	DialectPostgres: {
		driver: "pgx",
		schema: `CREATE TABLE IF NOT EXISTS events (
			seq BIGSERIAL PRIMARY KEY,
			event_id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			root_path TEXT NULL,
			type_name TEXT NOT NULL,
			item_name TEXT NULL,
			payload BYTEA NOT NULL,
			recorded_at BIGINT NOT NULL
		)`,
		nullSafeEq: "IS NOT DISTINCT FROM",
		numbered:   true,
	},
}

const eventColumns = "seq, event_id, kind, root_path, type_name, item_name, payload, recorded_at"

// SQLEventStore persists the event log in a single events table ordered by seq.
type SQLEventStore struct {
	db      *sql.DB
	dialect dialect
	mu      sync.Mutex
	closed  bool
}

// ParseSQLDialect maps a configuration value to a dialect.
func ParseSQLDialect(value string) (SQLDialect, error) {
	switch SQLDialect(strings.ToLower(strings.TrimSpace(value))) {
	case DialectSQLite, "sqlite3", "":
		return DialectSQLite, nil
	case DialectPostgres, "postgresql", "pgx":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported SQL dialect %q", value)
	}
}

// NewSQLEventStore opens the database, creating the events table when missing.
// For sqlite the dsn is a file path whose directory is created on demand.
func NewSQLEventStore(ctx context.Context, kind SQLDialect, dsn string) (*SQLEventStore, error) {
	d, ok := dialects[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported SQL dialect %q", kind)
	}

	switch kind {
	case DialectSQLite:
		if dsn == "" {
			dsn = defaultSQLitePath
		}

		if dir := filepath.Dir(dsn); dsn != ":memory:" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
				return nil, fmt.Errorf("create dirs: %w", err)
			}
		}
	case DialectPostgres:
		if dsn == "" {
			dsn = defaultPostgresDSN
		}
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", kind, err)
	}

	if kind == DialectSQLite {
		// One connection keeps writes serialized and makes :memory: databases usable.
		db.SetMaxOpenConns(1)

		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			slog.Warn("Failed to enable WAL", "dsn", dsn, "error", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", kind, err)
	}

	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}

	slog.Debug("Opened SQL event store", "dialect", kind)

	return &SQLEventStore{db: db, dialect: d}, nil
}

// Append implements EventStore. All events are written in one transaction.
func (s *SQLEventStore) Append(ctx context.Context, events ...m.Event) (retErr error) {
	if err := s.checkOpen(); err != nil {
		return err
	}

	records := make([]EventRecord, 0, len(events))

	for _, event := range events {
		record, err := NewEventRecord(event)
		if err != nil {
			return err
		}

		records = append(records, record)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}

	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	insert := s.rebind(`INSERT INTO events (event_id, kind, root_path, type_name, item_name, payload, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	for _, record := range records {
		_, err := tx.ExecContext(ctx, insert,
			record.EventID.String(),
			string(record.Kind),
			nullString(record.RootPath, record.HasRoot),
			record.TypeName,
			nullString(record.ItemName, record.HasName),
			record.Payload,
			record.RecordedAt.UnixNano(),
		)
		if err != nil {
			return fmt.Errorf("insert %s event: %w", record.Kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}

	slog.Debug("Appended events", "store", "sql", "count", len(records))

	return nil
}

// FindAll implements EventStore.
func (s *SQLEventStore) FindAll(ctx context.Context, id m.FixtureItemID) ([]m.Event, error) {
	where, args := s.idFilter(id)

	records, err := s.query(ctx, where, args, nil, false)
	if err != nil {
		return nil, err
	}

	return decodeRecords(records)
}

// FindAllForRoot implements EventStore.
func (s *SQLEventStore) FindAllForRoot(ctx context.Context, root string, kinds ...m.EventKind) ([]m.Event, error) {
	records, err := s.query(ctx, "root_path = ?", []any{root}, kinds, false)
	if err != nil {
		return nil, err
	}

	return decodeRecords(records)
}

// FindLast implements EventStore.
func (s *SQLEventStore) FindLast(ctx context.Context, id m.FixtureItemID, kinds ...m.EventKind) (fxpkg.Maybe[m.Event], error) {
	where, args := s.idFilter(id)

	records, err := s.query(ctx, where, args, kinds, true)
	if err != nil {
		return fxpkg.None[m.Event](), err
	}

	return lastEvent(records)
}

// FindLastForRoot implements EventStore.
func (s *SQLEventStore) FindLastForRoot(ctx context.Context, root string, kinds ...m.EventKind) (fxpkg.Maybe[m.Event], error) {
	records, err := s.query(ctx, "root_path = ?", []any{root}, kinds, true)
	if err != nil {
		return fxpkg.None[m.Event](), err
	}

	return lastEvent(records)
}

// Records implements EventStore.
func (s *SQLEventStore) Records(ctx context.Context, root string) ([]EventRecord, error) {
	return s.query(ctx, "root_path = ?", []any{root}, nil, false)
}

// Close implements EventStore.
func (s *SQLEventStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	return s.db.Close()
}

func (s *SQLEventStore) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	return nil
}

func (s *SQLEventStore) idFilter(id m.FixtureItemID) (string, []any) {
	eq := s.dialect.nullSafeEq
	where := fmt.Sprintf("root_path %s ? AND type_name = ? AND item_name %s ?", eq, eq)

	root, hasRoot := id.RootItemPath.Get()
	name, hasName := id.Name.Get()

	return where, []any{nullString(root, hasRoot), id.TypeFullName, nullString(name, hasName)}
}

func (s *SQLEventStore) query(ctx context.Context, where string, args []any, kinds []m.EventKind, lastOnly bool) ([]EventRecord, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	var b strings.Builder

	b.WriteString("SELECT " + eventColumns + " FROM events WHERE " + where)

	if len(kinds) > 0 {
		b.WriteString(" AND kind IN (" + strings.TrimSuffix(strings.Repeat("?, ", len(kinds)), ", ") + ")")

		for _, kind := range kinds {
			args = append(args, string(kind))
		}
	}

	if lastOnly {
		b.WriteString(" ORDER BY seq DESC LIMIT 1")
	} else {
		b.WriteString(" ORDER BY seq ASC")
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(b.String()), args...)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var records []EventRecord

	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return records, nil
}

// rebind turns ? placeholders into $n for dialects with numbered parameters.
func (s *SQLEventStore) rebind(query string) string {
	if !s.dialect.numbered {
		return query
	}

	var b strings.Builder

	n := 0

	for _, r := range query {
		if r == '?' {
			n++

			b.WriteString("$" + strconv.Itoa(n))

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

func scanRecord(rows *sql.Rows) (EventRecord, error) {
	var (
		record     EventRecord
		eventID    string
		kind       string
		rootPath   sql.NullString
		itemName   sql.NullString
		recordedAt int64
	)

	err := rows.Scan(&record.Sequence, &eventID, &kind, &rootPath, &record.TypeName, &itemName, &record.Payload, &recordedAt)
	if err != nil {
		return EventRecord{}, fmt.Errorf("scan event: %w", err)
	}

	record.EventID, err = uuid.Parse(eventID)
	if err != nil {
		return EventRecord{}, fmt.Errorf("parse event id %q: %w", eventID, err)
	}

	record.Kind = m.EventKind(kind)
	record.RootPath, record.HasRoot = rootPath.String, rootPath.Valid
	record.ItemName, record.HasName = itemName.String, itemName.Valid
	record.RecordedAt = time.Unix(0, recordedAt).UTC()

	return record, nil
}

func nullString(value string, valid bool) sql.NullString {
	return sql.NullString{String: value, Valid: valid}
}
