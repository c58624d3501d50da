// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package search

import "strings"

// HistorySize is how many recent queries the session keeps.
const HistorySize = 5

// History is a small most-recent-first list of committed queries. It is not
// safe for concurrent use; the session serializes access.
type History struct {
	entries []string
}

// Add records a committed query at the front. Blank queries are ignored and a
// repeated query moves to the front instead of duplicating.
func (h *History) Add(query string) {
	q := strings.TrimSpace(query)
	if q == "" {
		return
	}
	kept := make([]string, 0, HistorySize)
	kept = append(kept, q)
	for _, e := range h.entries {
		if e == q {
			continue
		}
		kept = append(kept, e)
		if len(kept) == HistorySize {
			break
		}
	}
	h.entries = kept
}

// Entries returns the queries, most recent first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
