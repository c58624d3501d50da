// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package search

import (
	"strconv"
	"testing"

	"github.com/nanawalke/voter-search/models"
)

func numbered(n int) []models.VoterRecord {
	recs := make([]models.VoterRecord, n)
	for i := range recs {
		recs[i] = models.VoterRecord{ID: strconv.Itoa(i + 1)}
	}
	return recs
}

func TestPaginate(t *testing.T) {
	recs := numbered(250)

	p := Paginate(recs, 1, 100)
	if p.TotalPages != 3 || p.Total != 250 || len(p.Records) != 100 {
		t.Fatalf("page 1 = %+v", p)
	}
	if p.Records[0].ID != "1" || p.Records[99].ID != "100" {
		t.Fatal("page 1 window wrong")
	}

	p = Paginate(recs, 3, 100)
	if len(p.Records) != 50 || p.Records[0].ID != "201" {
		t.Fatalf("last page = %+v", p)
	}
}

func TestPaginateClamps(t *testing.T) {
	recs := numbered(30)

	if p := Paginate(recs, 0, 10); p.Number != 1 {
		t.Fatalf("page 0 clamped to %d, want 1", p.Number)
	}
	if p := Paginate(recs, 99, 10); p.Number != 3 || p.Records[0].ID != "21" {
		t.Fatalf("overshoot clamped to %d", p.Number)
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 1, 100)
	if p.TotalPages != 1 || p.Number != 1 || len(p.Records) != 0 {
		t.Fatalf("empty set = %+v", p)
	}
}

func TestPaginateDefaultSize(t *testing.T) {
	p := Paginate(numbered(150), 1, 0)
	if p.Size != DefaultPageSize || len(p.Records) != DefaultPageSize {
		t.Fatalf("default size = %+v", p)
	}
}

func TestHistory(t *testing.T) {
	var h History

	h.Add("ravi")
	h.Add("  ")
	h.Add("patil")
	h.Add("ravi") // moves to front, no duplicate

	got := h.Entries()
	want := []string{"ravi", "patil"}
	if len(got) != len(want) {
		t.Fatalf("entries = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entries = %v, want %v", got, want)
		}
	}

	for _, q := range []string{"a", "b", "c", "d", "e", "f"} {
		h.Add(q)
	}
	got = h.Entries()
	if len(got) != HistorySize || got[0] != "f" {
		t.Fatalf("ring = %v", got)
	}
}
