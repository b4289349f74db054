/*
store.go - Persistence interface for the roster and ledger documents

PURPOSE:
  Defines the boundary between the in-memory collections and durable
  storage. A Gateway reads and writes whole collections; there are no
  partial updates and no indexes.

CONTRACT:
  - LoadX on a missing document returns an empty collection and nil.
  - LoadX on a document that exists but cannot be parsed returns an error
    wrapping ErrCorruptDocument. Whether that is fatal is decided by
    System.Open, not by the gateway.
  - SaveX overwrites the whole document with the given collection, in the
    given order.

IMPLEMENTATIONS:
  - store/jsonfile: two JSON documents on local disk (default)
  - store/sqlite:   SQLite file, one table per collection
  - attendance/store: in-memory, for tests
*/
package attendance

import "context"

// Gateway persists the roster and the ledger as two independent documents.
type Gateway interface {
	// LoadRoster returns employees in insertion order.
	LoadRoster(ctx context.Context) ([]Employee, error)

	// LoadLedger returns records in append order.
	LoadLedger(ctx context.Context) ([]Record, error)

	SaveRoster(ctx context.Context, employees []Employee) error
	SaveLedger(ctx context.Context, records []Record) error
}
