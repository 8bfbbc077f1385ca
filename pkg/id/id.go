package id

import "github.com/oklog/ulid/v2"

// New returns a ULID string (time-sortable identifier).
//
// Manually authored ledger entries get ULIDs instead of derived
// identities: they sort by creation time and can never collide with
// the hash-derived IDs reconciliation produces. ulid.Make draws from a
// locked monotonic crypto/rand source, so IDs minted within the same
// millisecond still come out strictly increasing and concurrent
// callers need no extra locking here.
func New() string {
	return ulid.Make().String()
}
