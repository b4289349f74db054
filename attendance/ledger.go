/*
ledger.go - Attendance ledger with one-record-per-day enforcement

PURPOSE:
  Holds the attendance records in append order and applies the marking
  rules. Every mutation is written through to the Gateway before the call
  returns.

INVARIANT:
  No two records for the same (EmployeeID, Date).

  Marking a pair that already has a record is a conflicting update. The
  caller resolves the conflict up front (MarkRequest.Confirmed); only a
  confirmed update overwrites Status and Time. The stored name is never
  refreshed.

ORDERING:
  Records are stored in append order. Records() shows the newest append
  first; Stored() and the exports keep append order.

ROLLBACK:
  If the save after a mutation fails, the in-memory change is undone and a
  *PersistenceError is returned, so memory and disk stay identical.

EXAMPLE:
  res, err := ledger.Mark(ctx, attendance.MarkRequest{
      EmployeeID: "E1",
      Status:     attendance.StatusPresent,
      At:         time.Now(),
  })
  if err == nil && res.Outcome == attendance.OutcomeDeclined {
      // already marked today and the operator did not confirm
  }

SEE ALSO:
  - export.go:  CSV and XLSX export
  - summary.go: Per-employee attendance rate
*/
package attendance

import (
	"context"
	"log/slog"
	"time"
)

// =============================================================================
// LEDGER
// =============================================================================

// Ledger holds one status record per employee per day.
//
// Not safe for concurrent use.
type Ledger struct {
	gw        Gateway
	roster    *Roster
	records   []Record
	exportDir string
	logger    *slog.Logger
}

// NewLedger returns an empty ledger that resolves names through roster and
// writes through to gw.
func NewLedger(gw Gateway, roster *Roster) *Ledger {
	return &Ledger{
		gw:        gw,
		roster:    roster,
		records:   []Record{},
		exportDir: ".",
		logger:    slog.Default(),
	}
}

func (l *Ledger) reset(records []Record) {
	l.records = make([]Record, len(records))
	copy(l.records, records)
}

// =============================================================================
// MARKING
// =============================================================================

// MarkRequest asks for an employee's status for the day of At.
type MarkRequest struct {
	EmployeeID EmployeeID
	Status     Status
	At         time.Time // local clock; supplies both date and time
	Confirmed  bool      // operator accepted overwriting an existing record
}

type Outcome int

const (
	OutcomeCreated  Outcome = iota // new record appended
	OutcomeUpdated                 // existing record overwritten
	OutcomeDeclined                // existing record left alone
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeDeclined:
		return "declined"
	default:
		return "unknown"
	}
}

// MarkResult reports what Mark did. Record is the record as it now stands.
type MarkResult struct {
	Outcome  Outcome
	Record   Record
	Previous *Record // set when an existing record was found
}

// Mark records req.Status for req.EmployeeID on the day of req.At.
func (l *Ledger) Mark(ctx context.Context, req MarkRequest) (MarkResult, error) {
	if !req.Status.Valid() {
		return MarkResult{}, &ValidationError{Field: "status", Message: "status must be one of Present, Absent"}
	}
	name, err := l.roster.Name(req.EmployeeID)
	if err != nil {
		return MarkResult{}, err
	}

	key := dayKey{employeeID: req.EmployeeID, date: dateOf(req.At)}
	if i, ok := l.find(key); ok {
		prev := l.records[i]
		if !req.Confirmed {
			return MarkResult{Outcome: OutcomeDeclined, Record: prev, Previous: &prev}, nil
		}

		l.records[i].Status = req.Status
		l.records[i].Time = timeOfDay(req.At)
		if err := l.save(ctx); err != nil {
			l.records[i] = prev
			return MarkResult{}, err
		}

		l.logger.Debug("attendance updated", "id", req.EmployeeID, "date", key.date, "status", req.Status)
		return MarkResult{Outcome: OutcomeUpdated, Record: l.records[i], Previous: &prev}, nil
	}

	rec := Record{
		EmployeeID:   req.EmployeeID,
		EmployeeName: name,
		Date:         key.date,
		Time:         timeOfDay(req.At),
		Status:       req.Status,
	}
	l.records = append(l.records, rec)
	if err := l.save(ctx); err != nil {
		l.records = l.records[:len(l.records)-1]
		return MarkResult{}, err
	}

	l.logger.Debug("attendance marked", "id", req.EmployeeID, "date", key.date, "status", req.Status)
	return MarkResult{Outcome: OutcomeCreated, Record: rec}, nil
}

// Conflict returns the record that marking employeeID at would overwrite.
// The shell uses it to decide whether to ask for confirmation.
func (l *Ledger) Conflict(employeeID EmployeeID, at time.Time) (Record, bool) {
	i, ok := l.find(dayKey{employeeID: employeeID, date: dateOf(at)})
	if !ok {
		return Record{}, false
	}
	return l.records[i], true
}

func (l *Ledger) find(key dayKey) (int, bool) {
	for i, r := range l.records {
		if r.key() == key {
			return i, true
		}
	}
	return -1, false
}

// =============================================================================
// QUERIES
// =============================================================================

// Records returns all records, most recent append first.
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	for i, r := range l.records {
		out[len(l.records)-1-i] = r
	}
	return out
}

// Stored returns all records in append order.
func (l *Ledger) Stored() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// On returns the records for one day (YYYY-MM-DD) in append order.
func (l *Ledger) On(date string) []Record {
	var out []Record
	for _, r := range l.records {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

func (l *Ledger) Len() int { return len(l.records) }

// =============================================================================
// CLEAR
// =============================================================================

// Clear removes every record when confirmed and persists the empty ledger.
// It reports whether anything was cleared. There is no undo.
func (l *Ledger) Clear(ctx context.Context, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}

	prev := l.records
	l.records = []Record{}
	if err := l.save(ctx); err != nil {
		l.records = prev
		return false, err
	}

	l.logger.Debug("ledger cleared", "removed", len(prev))
	return true, nil
}

func (l *Ledger) save(ctx context.Context) error {
	if err := l.gw.SaveLedger(ctx, l.Stored()); err != nil {
		return &PersistenceError{Op: "save", Path: "ledger", Err: err}
	}
	return nil
}
