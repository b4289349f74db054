// Package store provides an in-memory attendance.Gateway.
package store

import (
	"context"
	"sync"

	"github.com/warp/attendance/attendance"
)

// =============================================================================
// MEMORY GATEWAY - In-memory implementation (for testing/dry runs)
// =============================================================================

// Memory keeps both documents in process memory. Loads and saves copy, so
// callers never share slices with it.
type Memory struct {
	mu        sync.RWMutex
	employees []attendance.Employee
	records   []attendance.Record
	saves     int

	// FailSave, when set, is returned by every save and nothing is stored.
	FailSave error
	// FailLoad, when set, is returned by every load.
	FailLoad error
}

func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith returns a gateway preloaded with the given documents.
func NewMemoryWith(employees []attendance.Employee, records []attendance.Record) *Memory {
	return &Memory{
		employees: append([]attendance.Employee(nil), employees...),
		records:   append([]attendance.Record(nil), records...),
	}
}

func (m *Memory) LoadRoster(_ context.Context) ([]attendance.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailLoad != nil {
		return nil, m.FailLoad
	}
	return append([]attendance.Employee(nil), m.employees...), nil
}

func (m *Memory) LoadLedger(_ context.Context) ([]attendance.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailLoad != nil {
		return nil, m.FailLoad
	}
	return append([]attendance.Record(nil), m.records...), nil
}

func (m *Memory) SaveRoster(_ context.Context, employees []attendance.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	m.employees = append([]attendance.Employee(nil), employees...)
	m.saves++
	return nil
}

func (m *Memory) SaveLedger(_ context.Context, records []attendance.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	m.records = append([]attendance.Record{}, records...)
	m.saves++
	return nil
}

// Saves counts successful saves of either document.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

var _ attendance.Gateway = (*Memory)(nil)
