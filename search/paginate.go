// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package search

import "github.com/nanawalke/voter-search/models"

// DefaultPageSize matches the result-list page length the UI renders.
const DefaultPageSize = 100

// Page is one window into a filtered result set.
type Page struct {
	Records    []models.VoterRecord
	Number     int
	Size       int
	Total      int
	TotalPages int
}

// Paginate slices records into the requested page. Page numbers outside
// [1, TotalPages] are clamped rather than rejected; an empty result set still
// reports one (empty) page.
func Paginate(records []models.VoterRecord, page, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	total := len(records)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := min(start+size, total)
	if start > total {
		start = total
	}

	return Page{
		Records:    records[start:end],
		Number:     page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}
}
