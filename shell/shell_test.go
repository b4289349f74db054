package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/attendance/attendance"
	"github.com/warp/attendance/attendance/store"
	"github.com/warp/attendance/shell"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type harness struct {
	sys   *attendance.System
	gw    *store.Memory
	dir   string
	clock time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	gw := store.NewMemory()
	sys := attendance.NewSystem(gw, attendance.WithExportDir(dir))
	require.NoError(t, sys.Open(context.Background()))
	return &harness{
		sys:   sys,
		gw:    gw,
		dir:   dir,
		clock: time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local),
	}
}

// run executes one command with the given operator input and returns stdout.
func (h *harness) run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	sh := shell.New(h.sys, strings.NewReader(input), &out)
	sh.Now = func() time.Time { return h.clock }
	err := sh.Execute(context.Background(), args)
	return out.String(), err
}

func (h *harness) mustRun(t *testing.T, input string, args ...string) string {
	t.Helper()
	out, err := h.run(t, input, args...)
	require.NoError(t, err)
	return out
}

// =============================================================================
// USAGE
// =============================================================================

func TestExecute_Usage(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "")
	assert.ErrorIs(t, err, shell.ErrUsage)

	_, err = h.run(t, "", "dance")
	assert.ErrorIs(t, err, shell.ErrUsage)

	out := h.mustRun(t, "", "help")
	assert.Contains(t, out, "attendance mark -id ID")
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestAddAndListEmployees(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(t, "", "add", "-id", "E1", "-name", "Ada")
	assert.Equal(t, "Added employee: Ada (ID: E1)\n", out)
	h.mustRun(t, "", "add", "-id", "E2", "-name", "Grace Hopper")

	out = h.mustRun(t, "", "employees")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "E1")
	assert.Contains(t, lines[2], "Grace Hopper")
}

func TestAdd_Errors(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "", "add", "-id", "E1", "-name", "Ada")

	_, err := h.run(t, "", "add", "-id", "E1", "-name", "Someone")
	assert.ErrorIs(t, err, attendance.ErrDuplicateID)

	_, err = h.run(t, "", "add", "-id", "E2")
	assert.ErrorIs(t, err, attendance.ErrValidation)
}

func TestEmployees_Empty(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "No employees.\n", h.mustRun(t, "", "employees"))
}

// =============================================================================
// MARK
// =============================================================================

func TestMark_ConfirmationFlow(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "", "add", "-id", "E1", "-name", "Ada")

	out := h.mustRun(t, "", "mark", "-id", "E1", "-status", "present")
	assert.Equal(t, "Marked Ada as Present\n", out)

	// Operator declines.
	h.clock = h.clock.Add(8 * time.Hour)
	out = h.mustRun(t, "n\n", "mark", "-id", "E1", "-status", "absent")
	assert.Contains(t, out, "Attendance already marked for Ada today")
	assert.Contains(t, out, "left unchanged")
	assert.Equal(t, attendance.StatusPresent, h.sys.Ledger().Stored()[0].Status)

	// Operator accepts.
	out = h.mustRun(t, "y\n", "mark", "-id", "E1", "-status", "absent")
	assert.Contains(t, out, "Updated attendance for Ada: Absent")
	rec := h.sys.Ledger().Stored()[0]
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.Equal(t, "17:00:00", rec.Time)
	assert.Equal(t, 1, h.sys.Ledger().Len())
}

func TestMark_YesFlagSkipsPrompt(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "", "add", "-id", "E1", "-name", "Ada")
	h.mustRun(t, "", "mark", "-id", "E1", "-status", "present")

	out := h.mustRun(t, "", "mark", "-id", "E1", "-status", "absent", "-yes")

	assert.NotContains(t, out, "[y/N]")
	assert.Contains(t, out, "Updated attendance for Ada: Absent")
}

func TestMark_EndOfInputIsDecline(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "", "add", "-id", "E1", "-name", "Ada")
	h.mustRun(t, "", "mark", "-id", "E1", "-status", "present")

	out := h.mustRun(t, "", "mark", "-id", "E1", "-status", "absent")

	assert.Contains(t, out, "left unchanged")
}

func TestMark_Errors(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "", "add", "-id", "E1", "-name", "Ada")

	_, err := h.run(t, "", "mark", "-status", "present")
	assert.ErrorIs(t, err, attendance.ErrValidation)

	_, err = h.run(t, "", "mark", "-id", "E1", "-status", "late")
	assert.ErrorIs(t, err, attendance.ErrValidation)

	_, err = h.run(t, "", "mark", "-id", "E9", "-status", "present")
	assert.ErrorIs(t, err, attendance.ErrUnknownEmployee)
}

// =============================================================================
// RECORDS / SUMMARY
// =============================================================================

func TestRecords_NewestFirst(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "", "add", "-id", "E1", "-name", "Ada")
	h.mustRun(t, "", "mark", "-id", "E1", "-status", "present")
	h.clock = h.clock.AddDate(0, 0, 1)
	h.mustRun(t, "", "mark", "-id", "E1", "-status", "absent")

	out := h.mustRun(t, "", "records")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "EMPLOYEE ID")
	assert.Contains(t, lines[1], "2024-01-02")
	assert.Contains(t, lines[2], "2024-01-01")

	out = h.mustRun(t, "", "records", "-date", "2024-01-01")
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Present")

	_, err := h.run(t, "", "records", "-date", "01/02/2024")
	assert.ErrorIs(t, err, attendance.ErrValidation)
}

func TestRecords_Empty(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "No attendance records.\n", h.mustRun(t, "", "records"))
}

func TestSummary(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "", "add", "-id", "E1", "-name", "Ada")
	h.mustRun(t, "", "mark", "-id", "E1", "-status", "present")

	out := h.mustRun(t, "", "summary")

	assert.Contains(t, out, "RATE")
	assert.Contains(t, out, "100.00%")
}

// =============================================================================
// EXPORT / CLEAR
// =============================================================================

func TestExport(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", "export")
	require.ErrorIs(t, err, attendance.ErrEmptyLedger)

	h.mustRun(t, "", "add", "-id", "E1", "-name", "Ada")
	h.mustRun(t, "", "mark", "-id", "E1", "-status", "present")

	out := h.mustRun(t, "", "export")
	want := filepath.Join(h.dir, "attendance_export_20240101_090000.csv")
	assert.Equal(t, "Records exported to "+want+"\n", out)
	assert.FileExists(t, want)

	xlsx := filepath.Join(h.dir, "report.xlsx")
	h.mustRun(t, "", "export", "-format", "xlsx", "-out", xlsx)
	info, err := os.Stat(xlsx)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = h.run(t, "", "export", "-format", "pdf")
	assert.ErrorIs(t, err, attendance.ErrValidation)
}

func TestClear(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "", "add", "-id", "E1", "-name", "Ada")
	h.mustRun(t, "", "mark", "-id", "E1", "-status", "present")

	out := h.mustRun(t, "no\n", "clear")
	assert.Contains(t, out, "cannot be undone")
	assert.Contains(t, out, "Nothing cleared")
	assert.Equal(t, 1, h.sys.Ledger().Len())

	out = h.mustRun(t, "yes\n", "clear")
	assert.Contains(t, out, "All records cleared")
	assert.Equal(t, 0, h.sys.Ledger().Len())

	h.mustRun(t, "", "mark", "-id", "E1", "-status", "present")
	out = h.mustRun(t, "", "clear", "-yes")
	assert.Equal(t, "All records cleared\n", out)
}
