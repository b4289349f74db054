/*
system.go - Application state and load/flush lifecycle

PURPOSE:
  System owns the one roster and the one ledger of a running program and
  the Gateway they share. It replaces process-wide globals with an explicit
  object: construct, Open to load from storage, use, Flush if needed.

LOAD POLICY:
  A missing document is an empty collection. A corrupt document
  (ErrCorruptDocument) is:
    - strict load:  returned as *PersistenceError, nothing is loaded
    - default:      logged as a warning and replaced by an empty collection
  The default keeps old data files usable, but the next save overwrites the
  unreadable document, so the warning is the operator's only signal.
*/
package attendance

import (
	"context"
	"errors"
	"log/slog"
)

type System struct {
	gw         Gateway
	roster     *Roster
	ledger     *Ledger
	logger     *slog.Logger
	strictLoad bool
}

type Option func(*System)

func WithLogger(logger *slog.Logger) Option {
	return func(s *System) { s.logger = logger }
}

// WithStrictLoad makes Open fail on corrupt documents instead of starting
// empty.
func WithStrictLoad(strict bool) Option {
	return func(s *System) { s.strictLoad = strict }
}

// WithExportDir sets where exports go when no path is given.
func WithExportDir(dir string) Option {
	return func(s *System) { s.ledger.exportDir = dir }
}

func NewSystem(gw Gateway, opts ...Option) *System {
	roster := NewRoster(gw)
	s := &System{
		gw:     gw,
		roster: roster,
		ledger: NewLedger(gw, roster),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.roster.logger = s.logger
	s.ledger.logger = s.logger
	return s
}

func (s *System) Roster() *Roster { return s.roster }
func (s *System) Ledger() *Ledger { return s.ledger }

// Open loads the roster and then the ledger from the gateway.
func (s *System) Open(ctx context.Context) error {
	employees, err := s.gw.LoadRoster(ctx)
	if err != nil {
		if err := s.loadPolicy("roster", err); err != nil {
			return err
		}
		employees = nil
	}
	records, err := s.gw.LoadLedger(ctx)
	if err != nil {
		if err := s.loadPolicy("ledger", err); err != nil {
			return err
		}
		records = nil
	}

	s.roster.reset(employees)
	s.ledger.reset(records)
	s.logger.Info("attendance data loaded", "employees", s.roster.Len(), "records", s.ledger.Len())
	return nil
}

// loadPolicy decides whether a load error stops Open. A nil return means
// the collection is treated as empty.
func (s *System) loadPolicy(doc string, err error) error {
	if errors.Is(err, ErrCorruptDocument) && !s.strictLoad {
		s.logger.Warn("unreadable document treated as empty; it will be overwritten on next save",
			"document", doc, "error", err)
		return nil
	}
	return &PersistenceError{Op: "load", Path: doc, Err: err}
}

// Flush writes both collections to the gateway.
func (s *System) Flush(ctx context.Context) error {
	if err := s.gw.SaveRoster(ctx, s.roster.List()); err != nil {
		return &PersistenceError{Op: "save", Path: "roster", Err: err}
	}
	if err := s.gw.SaveLedger(ctx, s.ledger.Stored()); err != nil {
		return &PersistenceError{Op: "save", Path: "ledger", Err: err}
	}
	return nil
}
