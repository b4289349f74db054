/*
Package attendance records daily employee attendance.

PURPOSE:
  Keeps a roster of employees and a ledger with one status record per
  (employee, day). Both collections live in memory and are written
  through to a Gateway after every mutation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: identity record, created once, never renamed or removed
  - Record: one employee's status for one calendar day
  - Status: Present or Absent

INVARIANTS:
  1. Employee IDs are unique.
  2. At most one Record per (EmployeeID, Date).
  3. Record.EmployeeName is copied at marking time and never re-synced.

SEE ALSO:
  - roster.go: Roster store
  - ledger.go: Attendance ledger
  - store.go:  Gateway contract
  - system.go: Application state and load/flush lifecycle
*/
package attendance

import (
	"strings"
	"time"
)

// Layouts used for Record.Date and Record.Time.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string

func (id EmployeeID) String() string { return string(id) }

// =============================================================================
// EMPLOYEE
// =============================================================================

type Employee struct {
	ID   EmployeeID
	Name string
}

// =============================================================================
// STATUS
// =============================================================================

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

func (s Status) Valid() bool { return s == StatusPresent || s == StatusAbsent }

// ParseStatus accepts "present" or "absent" in any letter case.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present":
		return StatusPresent, nil
	case "absent":
		return StatusAbsent, nil
	}
	return "", &ValidationError{Field: "status", Message: "status must be one of Present, Absent"}
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one employee's attendance for one day. Time is the last write,
// not the first. Field tags match the ledger document layout.
type Record struct {
	EmployeeID   EmployeeID `json:"emp_id"`
	EmployeeName string     `json:"name"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Status       Status     `json:"status"`
}

func (r Record) key() dayKey { return dayKey{employeeID: r.EmployeeID, date: r.Date} }

type dayKey struct {
	employeeID EmployeeID
	date       string
}

func dateOf(t time.Time) string { return t.Format(DateLayout) }
func timeOfDay(t time.Time) string { return t.Format(TimeLayout) }
