package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"mriseq/internal/logging"
	"mriseq/internal/sequence"
)

// ErrEmpty is returned when a snapshot has never been imported.
var ErrEmpty = errors.New("snapshot is empty; run 'mriseq table import'")

// ErrLocked is returned when another process is writing the snapshot.
var ErrLocked = errors.New("snapshot is locked by another import")

const lockRetryInterval = 100 * time.Millisecond

// Info describes the most recent import.
type Info struct {
	Source     string    `json:"source"`
	ImportedAt time.Time `json:"imported_at"`
	Rows       int       `json:"rows"`
}

// Store manages the reference snapshot backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Open initializes or connects to the snapshot database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:     db,
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logging.NewComponentLogger(logger, "snapshot"),
	}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Replace swaps the stored rows for the rows of table, in table order. The
// write holds the snapshot lock; ctx bounds how long to wait for it.
func (s *Store) Replace(ctx context.Context, table *sequence.Table, source string) error {
	locked, err := s.lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%w: %w", ErrLocked, err)
		}
		return fmt.Errorf("acquire snapshot lock: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	defer func() { _ = s.lock.Unlock() }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM protocols"); err != nil {
		return fmt.Errorf("clear protocols: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO protocols (
            position, name, weighting, plane, three_d, observation, injection, saturation, diffusion_b
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	records := table.Records()
	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, i,
			rec.Name, rec.Weighting, rec.Plane, rec.ThreeD,
			rec.Observation, rec.Injection, rec.Saturation, rec.DiffusionB,
		); err != nil {
			return fmt.Errorf("insert protocol %q: %w", rec.Name, err)
		}
	}

	importedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, source, imported_at, row_count) VALUES (1, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET source = excluded.source,
             imported_at = excluded.imported_at, row_count = excluded.row_count`,
		source, importedAt, len(records),
	); err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	s.logger.Info("reference snapshot replaced",
		logging.String(logging.FieldEventType, "snapshot_replaced"),
		logging.String("source", source),
		logging.Int("rows", len(records)))
	return nil
}

// Info returns details of the last import, or ErrEmpty.
func (s *Store) Info(ctx context.Context) (Info, error) {
	var (
		info       Info
		importedAt string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT source, imported_at, row_count FROM imports WHERE id = 1",
	).Scan(&info.Source, &importedAt, &info.Rows)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, ErrEmpty
	}
	if err != nil {
		return Info{}, fmt.Errorf("read import info: %w", err)
	}
	if info.ImportedAt, err = time.Parse(time.RFC3339Nano, importedAt); err != nil {
		return Info{}, fmt.Errorf("parse import time %q: %w", importedAt, err)
	}
	return info, nil
}

// Records returns the stored rows in their original order.
func (s *Store) Records(ctx context.Context) ([]sequence.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
            name, weighting, plane, three_d, observation, injection, saturation, diffusion_b
        FROM protocols ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query protocols: %w", err)
	}
	defer rows.Close()

	var records []sequence.Record
	for rows.Next() {
		var rec sequence.Record
		if err := rows.Scan(
			&rec.Name, &rec.Weighting, &rec.Plane, &rec.ThreeD,
			&rec.Observation, &rec.Injection, &rec.Saturation, &rec.DiffusionB,
		); err != nil {
			return nil, fmt.Errorf("scan protocol: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate protocols: %w", err)
	}
	return records, nil
}

// Classifier builds a Classifier from the stored rows. Stored names are
// already normalized keys and are indexed as-is. An empty snapshot is
// reported as sequence.ErrSource so callers treat it like a missing CSV.
func (s *Store) Classifier(ctx context.Context, logger *slog.Logger) (*sequence.Classifier, error) {
	if _, err := s.Info(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", sequence.ErrSource, s.path, err)
	}
	records, err := s.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", sequence.ErrSource, s.path, err)
	}
	table := sequence.NewKeyedTable(records)
	s.logger.Info("reference snapshot loaded",
		logging.String(logging.FieldEventType, "snapshot_loaded"),
		logging.Int("rows", table.Len()),
		logging.Int("keys", table.KeyCount()))
	return sequence.New(table, logger), nil
}
