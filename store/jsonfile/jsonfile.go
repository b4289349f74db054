/*
Package jsonfile provides the default attendance.Gateway: two JSON documents
on local disk.

DOCUMENTS:
  roster (employees.json): one object mapping employee id to name, keys in
  insertion order.

    {
      "E1": "Ada",
      "E2": "Grace"
    }

  ledger (attendance.json): an array of records in append order.

    [
      {
        "emp_id": "E1",
        "name": "Ada",
        "date": "2024-01-01",
        "time": "09:00:00",
        "status": "Present"
      }
    ]

WRITES:
  Every save rewrites the whole file in place with two-space indentation.
  There is no temp-file rename and no backup: a crash mid-write can leave a
  truncated document, which the next load reports as corrupt.

SEE ALSO:
  - attendance/store.go: Gateway contract
*/
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/warp/attendance/attendance"
)

const (
	DefaultRosterPath = "employees.json"
	DefaultLedgerPath = "attendance.json"

	indent   = "  "
	fileMode = 0o644
)

// Store reads and writes the roster and ledger documents at fixed paths.
type Store struct {
	rosterPath string
	ledgerPath string
}

// New returns a Store for the given paths. Empty paths fall back to
// DefaultRosterPath and DefaultLedgerPath.
func New(rosterPath, ledgerPath string) *Store {
	if rosterPath == "" {
		rosterPath = DefaultRosterPath
	}
	if ledgerPath == "" {
		ledgerPath = DefaultLedgerPath
	}
	return &Store{rosterPath: rosterPath, ledgerPath: ledgerPath}
}

func (s *Store) RosterPath() string { return s.rosterPath }
func (s *Store) LedgerPath() string { return s.ledgerPath }

// =============================================================================
// ROSTER DOCUMENT
// =============================================================================

func (s *Store) LoadRoster(_ context.Context) ([]attendance.Employee, error) {
	data, err := readDocument(s.rosterPath)
	if err != nil || data == nil {
		return nil, err
	}
	employees, err := decodeRoster(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", attendance.ErrCorruptDocument, s.rosterPath, err)
	}
	return employees, nil
}

func (s *Store) SaveRoster(_ context.Context, employees []attendance.Employee) error {
	data, err := encodeRoster(employees)
	if err != nil {
		return err
	}
	return os.WriteFile(s.rosterPath, data, fileMode)
}

// encodeRoster writes an object whose keys keep the slice order.
// encoding/json would sort map keys.
func encodeRoster(employees []attendance.Employee) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, e := range employees {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := json.Marshal(string(e.ID))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(val)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// decodeRoster walks the object token by token to keep key order. A key
// that appears twice keeps its first position and its last value.
func decodeRoster(data []byte) ([]attendance.Employee, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("roster must be a JSON object, got %v", tok)
	}

	var employees []attendance.Employee
	seen := make(map[attendance.EmployeeID]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)

		var name string
		if err := dec.Decode(&name); err != nil {
			return nil, fmt.Errorf("employee %q: %w", key, err)
		}

		id := attendance.EmployeeID(key)
		if i, ok := seen[id]; ok {
			employees[i].Name = name
			continue
		}
		seen[id] = len(employees)
		employees = append(employees, attendance.Employee{ID: id, Name: name})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after roster object")
	}
	return employees, nil
}

// =============================================================================
// LEDGER DOCUMENT
// =============================================================================

func (s *Store) LoadLedger(_ context.Context) ([]attendance.Record, error) {
	data, err := readDocument(s.ledgerPath)
	if err != nil || data == nil {
		return nil, err
	}
	var records []attendance.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", attendance.ErrCorruptDocument, s.ledgerPath, err)
	}
	return records, nil
}

func (s *Store) SaveLedger(_ context.Context, records []attendance.Record) error {
	if records == nil {
		records = []attendance.Record{}
	}
	data, err := json.MarshalIndent(records, "", indent)
	if err != nil {
		return err
	}
	return os.WriteFile(s.ledgerPath, append(data, '\n'), fileMode)
}

// readDocument returns nil data and a nil error when the file is missing.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

var _ attendance.Gateway = (*Store)(nil)
