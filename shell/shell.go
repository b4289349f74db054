/*
Package shell is the command-line front end of the attendance recorder.

PURPOSE:
  Turns subcommands into calls on attendance.System and renders the
  results. It owns every interactive concern: reading flags, asking the
  operator to confirm an overwrite or a clear, and formatting tables.
  No attendance rule lives here.

COMMANDS:
  add       -id ID -name NAME
  employees
  mark      -id ID -status present|absent [-yes]
  records   [-date YYYY-MM-DD]
  export    [-out PATH] [-format csv|xlsx]
  clear     [-yes]
  summary
*/
package shell

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/warp/attendance/attendance"
)

var ErrUsage = errors.New("usage")

type Shell struct {
	sys *attendance.System
	in  *bufio.Reader
	out io.Writer

	// Now supplies the timestamp for marking and export names.
	Now func() time.Time
}

func New(sys *attendance.System, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		sys: sys,
		in:  bufio.NewReader(in),
		out: out,
		Now: time.Now,
	}
}

// Execute runs one command. Unknown or missing commands return ErrUsage.
func (s *Shell) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usageError()
	}

	switch args[0] {
	case "add":
		return s.runAdd(ctx, args[1:])
	case "employees":
		return s.runEmployees()
	case "mark":
		return s.runMark(ctx, args[1:])
	case "records":
		return s.runRecords(args[1:])
	case "export":
		return s.runExport(args[1:])
	case "clear":
		return s.runClear(ctx, args[1:])
	case "summary":
		return s.runSummary()
	case "help", "-h", "--help":
		PrintUsage(s.out)
		return nil
	default:
		return usageError()
	}
}

func usageError() error {
	return fmt.Errorf("%w: attendance <add|employees|mark|records|export|clear|summary> [...]", ErrUsage)
}

// PrintUsage writes the command summary.
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: attendance add -id ID -name NAME")
	fmt.Fprintln(w, "       attendance employees")
	fmt.Fprintln(w, "       attendance mark -id ID -status present|absent [-yes]")
	fmt.Fprintln(w, "       attendance records [-date YYYY-MM-DD]")
	fmt.Fprintln(w, "       attendance export [-out PATH] [-format csv|xlsx]")
	fmt.Fprintln(w, "       attendance clear [-yes]")
	fmt.Fprintln(w, "       attendance summary")
}

func (s *Shell) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(s.out)
	return fs
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Shell) runAdd(ctx context.Context, args []string) error {
	fs := s.flags("add")
	id := fs.String("id", "", "employee id")
	name := fs.String("name", "", "employee name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	emp, err := s.sys.Roster().Add(ctx, *id, *name)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Added employee: %s (ID: %s)\n", emp.Name, emp.ID)
	return nil
}

func (s *Shell) runEmployees() error {
	employees := s.sys.Roster().List()
	if len(employees) == 0 {
		fmt.Fprintln(s.out, "No employees.")
		return nil
	}

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, e := range employees {
		fmt.Fprintf(tw, "%s\t%s\n", e.ID, e.Name)
	}
	return tw.Flush()
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func (s *Shell) runMark(ctx context.Context, args []string) error {
	fs := s.flags("mark")
	id := fs.String("id", "", "employee id")
	status := fs.String("status", "", "present or absent")
	yes := fs.Bool("yes", false, "overwrite today's record without asking")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*id) == "" {
		return &attendance.ValidationError{Field: "id", Message: "please select an employee"}
	}
	st, err := attendance.ParseStatus(*status)
	if err != nil {
		return err
	}

	ledger := s.sys.Ledger()
	empID := attendance.EmployeeID(strings.TrimSpace(*id))
	now := s.Now()

	confirmed := *yes
	if !confirmed {
		if prev, ok := ledger.Conflict(empID, now); ok {
			confirmed = s.confirm(fmt.Sprintf(
				"Attendance already marked for %s today (%s at %s).\nDo you want to update it?",
				prev.EmployeeName, prev.Status, prev.Time))
		}
	}

	res, err := ledger.Mark(ctx, attendance.MarkRequest{
		EmployeeID: empID,
		Status:     st,
		At:         now,
		Confirmed:  confirmed,
	})
	if err != nil {
		return err
	}

	switch res.Outcome {
	case attendance.OutcomeCreated:
		fmt.Fprintf(s.out, "Marked %s as %s\n", res.Record.EmployeeName, res.Record.Status)
	case attendance.OutcomeUpdated:
		fmt.Fprintf(s.out, "Updated attendance for %s: %s\n", res.Record.EmployeeName, res.Record.Status)
	case attendance.OutcomeDeclined:
		fmt.Fprintf(s.out, "Attendance for %s left unchanged\n", res.Record.EmployeeName)
	}
	return nil
}

func (s *Shell) runRecords(args []string) error {
	fs := s.flags("records")
	date := fs.String("date", "", "only show this day (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	records := s.sys.Ledger().Records()
	if *date != "" {
		if _, err := time.Parse(attendance.DateLayout, *date); err != nil {
			return &attendance.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}
		}
		records = newestFirst(s.sys.Ledger().On(*date))
	}
	if len(records) == 0 {
		fmt.Fprintln(s.out, "No attendance records.")
		return nil
	}

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(attendance.ExportHeader, "\t")))
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.EmployeeID, r.EmployeeName, r.Date, r.Time, r.Status)
	}
	return tw.Flush()
}

func newestFirst(records []attendance.Record) []attendance.Record {
	out := make([]attendance.Record, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}

func (s *Shell) runExport(args []string) error {
	fs := s.flags("export")
	out := fs.String("out", "", "destination file (default: timestamped name in the export directory)")
	format := fs.String("format", "csv", "csv or xlsx")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		path string
		err  error
	)
	switch strings.ToLower(*format) {
	case "csv":
		path, err = s.sys.Ledger().ExportCSV(*out, s.Now())
	case "xlsx":
		path, err = s.sys.Ledger().ExportXLSX(*out, s.Now())
	default:
		return &attendance.ValidationError{Field: "format", Message: "format must be csv or xlsx"}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Records exported to %s\n", path)
	return nil
}

func (s *Shell) runClear(ctx context.Context, args []string) error {
	fs := s.flags("clear")
	yes := fs.Bool("yes", false, "clear without asking")
	if err := fs.Parse(args); err != nil {
		return err
	}

	confirmed := *yes || s.confirm(
		"Are you sure you want to clear ALL attendance records?\nThis action cannot be undone.")

	cleared, err := s.sys.Ledger().Clear(ctx, confirmed)
	if err != nil {
		return err
	}
	if cleared {
		fmt.Fprintln(s.out, "All records cleared")
	} else {
		fmt.Fprintln(s.out, "Nothing cleared")
	}
	return nil
}

func (s *Shell) runSummary() error {
	summary := s.sys.Ledger().Summary()
	if len(summary) == 0 {
		fmt.Fprintln(s.out, "No employees.")
		return nil
	}

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRESENT\tABSENT\tRATE")
	for _, e := range summary {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s%%\n", e.EmployeeID, e.Name, e.Present, e.Absent, e.Rate.StringFixed(2))
	}
	return tw.Flush()
}

// confirm asks a yes/no question. Anything but y or yes, including end of
// input, is a no.
func (s *Shell) confirm(question string) bool {
	fmt.Fprintf(s.out, "%s [y/N] ", question)
	line, _ := s.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
