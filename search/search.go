// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package search

import (
	"strings"

	"github.com/nanawalke/voter-search/models"
)

const (
	// SuggestLimit caps how many autocomplete entries a prefix query returns.
	SuggestLimit = 10
	// SuggestMinChars is the minimum trimmed query length that produces
	// suggestions at all.
	SuggestMinChars = 2
)

// Filter returns the records matching query, preserving input order.
//
// A blank query matches nothing: results only ever follow an explicit query.
// A single search term matches if it is a case-insensitive substring of any
// searchable field (names, card number, mobile, serial, house number, age).
// Multiple terms match when every term appears in the English name, or every
// term appears in the Marathi name, or the whole query (as typed, trimmed)
// is a substring of one of the identifying fields.
func Filter(records []models.VoterRecord, query string) []models.VoterRecord {
	out := make([]models.VoterRecord, 0)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return out
	}
	terms := strings.Fields(q)

	for _, r := range records {
		if matches(r, q, terms) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.VoterRecord, q string, terms []string) bool {
	if len(terms) == 1 {
		return fieldContains(filterFields(r), terms[0])
	}

	// Every term within one name field; the two scripts never mix.
	if allTermsIn(r.NameEnglish, terms) || allTermsIn(r.NameMarathi, terms) {
		return true
	}

	for _, f := range identifierFields(r) {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func allTermsIn(field string, terms []string) bool {
	f := strings.ToLower(field)
	for _, t := range terms {
		if !strings.Contains(f, t) {
			return false
		}
	}
	return true
}

// filterFields are the fields a single-term search scans. Gender is
// deliberately absent: "male" must not match every male voter.
func filterFields(r models.VoterRecord) []string {
	return []string{
		r.SerialNumber, r.HouseNumber,
		r.NameEnglish, r.NameMarathi,
		r.Age, r.VoterIDCard, r.MobileNumber,
	}
}

func identifierFields(r models.VoterRecord) []string {
	return []string{r.VoterIDCard, r.MobileNumber, r.SerialNumber, r.HouseNumber, r.Age}
}

// suggestFields are the narrower set autocomplete scans.
func suggestFields(r models.VoterRecord) []string {
	return []string{r.NameEnglish, r.NameMarathi, r.VoterIDCard, r.MobileNumber}
}

func fieldContains(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Suggest produces up to SuggestLimit autocomplete entries for a partial
// query, scanning only names, card number and mobile. Entries are
// deduplicated by their display text, which is the first non-empty of
// English name, Marathi name, card number and mobile.
func Suggest(records []models.VoterRecord, query string) []models.Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < SuggestMinChars {
		return nil
	}

	seen := make(map[string]bool)
	out := make([]models.Suggestion, 0, SuggestLimit)
	for _, r := range records {
		if !fieldContains(suggestFields(r), q) {
			continue
		}
		display := firstNonEmpty(r.NameEnglish, r.NameMarathi, r.VoterIDCard, r.MobileNumber)
		if display == "" || seen[display] {
			continue
		}
		seen[display] = true
		out = append(out, models.Suggestion{
			NameEnglish: r.NameEnglish,
			NameMarathi: r.NameMarathi,
			VoterIDCard: r.VoterIDCard,
			Mobile:      r.MobileNumber,
			Display:     display,
		})
		if len(out) == SuggestLimit {
			break
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// Stats tallies the gender split across records, accepting either language's
// labels.
func Stats(records []models.VoterRecord) models.GenderStats {
	var s models.GenderStats
	for _, r := range records {
		switch {
		case r.GenderEnglish == models.GenderMaleEnglish || r.GenderMarathi == models.GenderMaleMarathi:
			s.Males++
		case r.GenderEnglish == models.GenderFemaleEnglish || r.GenderMarathi == models.GenderFemaleMarathi:
			s.Females++
		}
	}
	s.Total = len(records)
	return s
}
