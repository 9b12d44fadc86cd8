package id

import (
	"strings"
	"sync"
	"testing"
)

func TestNewULID(t *testing.T) {
	id := NewULID()
	if len(id) != 26 {
		t.Errorf("expected ULID length 26, got %d (%q)", len(id), id)
	}
	if !IsValidULID(id) {
		t.Errorf("generated ULID %q does not parse", id)
	}
}

func TestBusinessNumbers(t *testing.T) {
	lead := NewLeadNumber()
	if !strings.HasPrefix(lead, "LD-") {
		t.Errorf("lead number %q missing LD- prefix", lead)
	}
	if !IsValidULID(lead) {
		t.Errorf("lead number %q does not parse as prefixed ULID", lead)
	}

	ticket := NewTicketNumber()
	if !strings.HasPrefix(ticket, "TK-") {
		t.Errorf("ticket number %q missing TK- prefix", ticket)
	}
	if !IsValidULID(ticket) {
		t.Errorf("ticket number %q does not parse as prefixed ULID", ticket)
	}
}

func TestNewULID_Unique(t *testing.T) {
	const n = 1000
	seen := make(map[string]bool, n)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < n/8; j++ {
				id := NewULID()
				mu.Lock()
				if seen[id] {
					t.Errorf("duplicate ULID %q", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}

func TestIsValidULID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"LD-", false},
		{"not-a-ulid", false},
		{NewULID(), true},
		{NewLeadNumber(), true},
	}
	for _, tt := range tests {
		if got := IsValidULID(tt.in); got != tt.want {
			t.Errorf("IsValidULID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
