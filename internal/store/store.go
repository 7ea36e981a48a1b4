// Package store is the local task store: a sqlite database of work
// entries recorded from the CLI before they are invoiced.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/angelofallars/hourbill/internal/invoice"
	"github.com/angelofallars/hourbill/internal/timesheet"
)

const driverName = "sqlite"

// migrations run in order on every Open; each statement is idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS entries (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		client     TEXT NOT NULL,
		work_date  TEXT NOT NULL,
		hours      REAL NOT NULL,
		rate       REAL NOT NULL,
		notes      TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_client_status ON entries(client, status)`,
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the task store at path and applies
// the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open task store: %w", err)
	}
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate task store: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Entry is one unit of work to record for later invoicing.
type Entry struct {
	Client string
	Date   time.Time
	Hours  float64
	Rate   float64
	Notes  string
}

// Add records an entry with status "Not Billed".
func (s *Store) Add(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (client, work_date, hours, rate, notes, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Client, e.Date.Format(invoice.DateLayout), e.Hours, e.Rate, e.Notes,
		timesheet.StatusUnbilled,
	)
	if err != nil {
		return fmt.Errorf("add entry: %w", err)
	}
	return nil
}

// ClientSource scopes the store to one client's records.
func (s *Store) ClientSource(client string) *ClientSource {
	return &ClientSource{store: s, client: client}
}

// ClientSource reads one client's entries as timesheet records, in
// insertion order, and can mark them billed after a successful run.
type ClientSource struct {
	store  *Store
	client string
}

var _ timesheet.Source = (*ClientSource)(nil)
var _ timesheet.Marker = (*ClientSource)(nil)

func (c *ClientSource) Records(ctx context.Context) ([]timesheet.Record, error) {
	rows, err := c.store.db.QueryContext(ctx,
		`SELECT id, work_date, hours, rate, notes, status
		 FROM entries WHERE client = ? ORDER BY id`,
		c.client,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", timesheet.ErrSourceRead, err)
	}
	defer rows.Close()

	var recs []timesheet.Record
	for rows.Next() {
		var (
			rec         timesheet.Record
			hours, rate float64
		)
		if err := rows.Scan(&rec.ID, &rec.Date, &hours, &rate, &rec.Notes, &rec.Status); err != nil {
			return nil, fmt.Errorf("%w: %v", timesheet.ErrSourceRead, err)
		}
		rec.Hours = strconv.FormatFloat(hours, 'f', -1, 64)
		rec.Rate = strconv.FormatFloat(rate, 'f', -1, 64)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", timesheet.ErrSourceRead, err)
	}
	return recs, nil
}

// MarkBilled flips the given records to "Billed" in one transaction.
// Records without a store id (from other sources) are ignored.
func (c *ClientSource) MarkBilled(ctx context.Context, recs []timesheet.Record) error {
	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mark billed: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range recs {
		if rec.ID == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE entries SET status = ? WHERE id = ? AND client = ?`,
			timesheet.StatusBilled, rec.ID, c.client,
		); err != nil {
			return fmt.Errorf("mark billed: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mark billed: %w", err)
	}
	return nil
}
