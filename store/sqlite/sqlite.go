/*
Package sqlite provides a SQLite-backed attendance.Gateway.

PURPOSE:
  Alternative to the JSON documents for operators who prefer a single
  database file. The semantics are the same: each save replaces the whole
  collection, each load returns it in insertion order.

KEY TABLES:
  employees:  roster, ordered by seq (insertion order)
  attendance: ledger, ordered by seq (append order)

WHOLE-COLLECTION WRITES:
  SaveRoster/SaveLedger delete every row and re-insert the collection
  inside one SQL transaction. Unlike the JSON files, a crash mid-save
  leaves the previous collection intact.

USAGE:
  store, err := sqlite.New("./attendance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  sys := attendance.NewSystem(store)

  Use ":memory:" for a throwaway database.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/attendance/attendance"
)

// Store implements attendance.Gateway using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each :memory: connection is its own database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attendance (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		emp_id TEXT NOT NULL,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		status TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_emp_date
		ON attendance(emp_id, date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ROSTER
// =============================================================================

func (s *Store) LoadRoster(ctx context.Context) ([]attendance.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM employees ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []attendance.Employee
	for rows.Next() {
		var e attendance.Employee
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) SaveRoster(ctx context.Context, employees []attendance.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rewrite(ctx, "employees", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, "INSERT INTO employees (id, name) VALUES (?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range employees {
			if _, err := stmt.ExecContext(ctx, string(e.ID), e.Name); err != nil {
				return fmt.Errorf("failed to insert employee %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

// =============================================================================
// LEDGER
// =============================================================================

func (s *Store) LoadLedger(ctx context.Context) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT emp_id, name, date, time, status FROM attendance ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var r attendance.Record
		if err := rows.Scan(&r.EmployeeID, &r.EmployeeName, &r.Date, &r.Time, &r.Status); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) SaveLedger(ctx context.Context, records []attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rewrite(ctx, "attendance", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO attendance (emp_id, name, date, time, status) VALUES (?, ?, ?, ?, ?)",
		)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range records {
			if _, err := stmt.ExecContext(ctx,
				string(r.EmployeeID), r.EmployeeName, r.Date, r.Time, string(r.Status),
			); err != nil {
				return fmt.Errorf("failed to insert record: %w", err)
			}
		}
		return nil
	})
}

// rewrite empties table and refills it through fill, atomically.
func (s *Store) rewrite(ctx context.Context, table string, fill func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// table is one of two constants, never user input.
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	if err := fill(tx); err != nil {
		return err
	}
	return tx.Commit()
}

var _ attendance.Gateway = (*Store)(nil)
