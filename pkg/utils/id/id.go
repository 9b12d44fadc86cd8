// Package id generates identifiers for business records.
package id

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewULID returns a new lexicographically sortable unique identifier.
// Generation never fails; entropy exhaustion falls back to a fresh
// timestamped ULID.
func NewULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}

// NewLeadNumber returns a lead business number, e.g. "LD-01J8ZC...".
func NewLeadNumber() string {
	return "LD-" + NewULID()
}

// NewTicketNumber returns a ticket business number.
func NewTicketNumber() string {
	return "TK-" + NewULID()
}

// IsValidULID reports whether s parses as a ULID, ignoring any business
// prefix before the last dash.
func IsValidULID(s string) bool {
	if i := strings.LastIndex(s, "-"); i >= 0 {
		s = s[i+1:]
	}
	_, err := ulid.ParseStrict(s)
	return err == nil
}
