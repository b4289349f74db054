package attendance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// EmployeeSummary counts one employee's marked days.
type EmployeeSummary struct {
	EmployeeID EmployeeID
	Name       string
	Present    int
	Absent     int
	Rate       decimal.Decimal // percent of marked days present, 2 places
}

func (s EmployeeSummary) Marked() int { return s.Present + s.Absent }

// Summary returns one entry per roster employee in roster order, followed
// by any employee that appears only in the ledger, in order of first record.
func (l *Ledger) Summary() []EmployeeSummary {
	var out []EmployeeSummary
	pos := make(map[EmployeeID]int)

	for _, e := range l.roster.List() {
		pos[e.ID] = len(out)
		out = append(out, EmployeeSummary{EmployeeID: e.ID, Name: e.Name})
	}

	for _, r := range l.records {
		i, ok := pos[r.EmployeeID]
		if !ok {
			i = len(out)
			pos[r.EmployeeID] = i
			out = append(out, EmployeeSummary{EmployeeID: r.EmployeeID, Name: r.EmployeeName})
		}
		switch r.Status {
		case StatusPresent:
			out[i].Present++
		case StatusAbsent:
			out[i].Absent++
		}
	}

	for i := range out {
		out[i].Rate = rate(out[i].Present, out[i].Marked())
	}
	return out
}

func rate(present, marked int) decimal.Decimal {
	if marked == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(present)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(marked))).
		Round(2)
}
