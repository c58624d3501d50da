// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package search implements the in-memory query layer: substring filtering
// with bilingual multi-term name matching, autocomplete suggestions,
// pagination, gender statistics, and the recent-query history.
package search
