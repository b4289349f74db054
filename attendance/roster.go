package attendance

import (
	"context"
	"log/slog"
)

// =============================================================================
// ROSTER - Known employees, keyed by id, in insertion order
// =============================================================================

// Roster holds the employees known to the system. There is no rename and no
// removal: an employee, once added, stays as entered.
//
// Not safe for concurrent use.
type Roster struct {
	gw        Gateway
	employees []Employee
	index     map[EmployeeID]int
	logger    *slog.Logger
}

// NewRoster returns an empty roster that writes through to gw.
func NewRoster(gw Gateway) *Roster {
	return &Roster{
		gw:     gw,
		index:  make(map[EmployeeID]int),
		logger: slog.Default(),
	}
}

// reset replaces the contents with loaded employees. A repeated id keeps its
// first position and its last name.
func (r *Roster) reset(employees []Employee) {
	r.employees = make([]Employee, 0, len(employees))
	r.index = make(map[EmployeeID]int, len(employees))
	for _, e := range employees {
		if i, ok := r.index[e.ID]; ok {
			r.employees[i].Name = e.Name
			continue
		}
		r.index[e.ID] = len(r.employees)
		r.employees = append(r.employees, e)
	}
}

// Add inserts a new employee and persists the roster. Both fields are
// trimmed and must be non-empty. If the save fails the insertion is undone.
func (r *Roster) Add(ctx context.Context, id, name string) (Employee, error) {
	in := newEmployeeInput(id, name)
	if err := inputs.check(in); err != nil {
		return Employee{}, err
	}

	emp := Employee{ID: EmployeeID(in.ID), Name: in.Name}
	if i, ok := r.index[emp.ID]; ok {
		return Employee{}, &DuplicateIDError{ID: emp.ID, Name: r.employees[i].Name}
	}

	r.index[emp.ID] = len(r.employees)
	r.employees = append(r.employees, emp)

	if err := r.gw.SaveRoster(ctx, r.List()); err != nil {
		delete(r.index, emp.ID)
		r.employees = r.employees[:len(r.employees)-1]
		return Employee{}, &PersistenceError{Op: "save", Path: "roster", Err: err}
	}

	r.logger.Debug("employee added", "id", emp.ID, "name", emp.Name)
	return emp, nil
}

// List returns a copy of all employees in insertion order.
func (r *Roster) List() []Employee {
	out := make([]Employee, len(r.employees))
	copy(out, r.employees)
	return out
}

// Name resolves an id to the employee's name.
func (r *Roster) Name(id EmployeeID) (string, error) {
	i, ok := r.index[id]
	if !ok {
		return "", &UnknownEmployeeError{ID: id}
	}
	return r.employees[i].Name, nil
}

func (r *Roster) Contains(id EmployeeID) bool {
	_, ok := r.index[id]
	return ok
}

func (r *Roster) Len() int { return len(r.employees) }
