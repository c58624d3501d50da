// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nanawalke/voter-search/dispatch"
	"github.com/nanawalke/voter-search/loader"
	"github.com/nanawalke/voter-search/models"
	"github.com/nanawalke/voter-search/search"
)

const defaultSettleDelay = 2 * time.Second

// Session owns the in-memory voter data set and the state that hangs off it:
// the committed query, the recent-query history, and the auto-send run that a
// committed search can trigger once results have settled.
type Session struct {
	mu      sync.RWMutex
	records []models.VoterRecord
	query   string
	history search.History

	loader     *loader.Loader
	dispatcher *dispatch.Dispatcher

	// SettleDelay is how long a committed search's results must stay current
	// before the auto-send run starts.
	SettleDelay time.Duration

	autoMu     sync.Mutex
	autoTimer  *time.Timer
	autoCancel context.CancelFunc
	autoStatus models.AutoSendStatus
}

func New(l *loader.Loader, d *dispatch.Dispatcher) *Session {
	s := &Session{
		loader:      l,
		dispatcher:  d,
		SettleDelay: defaultSettleDelay,
	}
	if l != nil {
		l.OnPartial = s.ReplaceRecords
	}
	return s
}

// ReplaceRecords swaps in a new data set. Partial loader snapshots land here
// too, so searches see data while a long load is still running.
func (s *Session) ReplaceRecords(recs []models.VoterRecord) {
	s.mu.Lock()
	s.records = recs
	s.mu.Unlock()
	slog.Info("voter data set replaced", "records", len(recs))
}

// Records returns the current data set. Callers must not mutate it.
func (s *Session) Records() []models.VoterRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Reload fetches the data set from scratch and reports how many records
// arrived.
func (s *Session) Reload(ctx context.Context) (int, error) {
	recs, err := s.loader.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	s.ReplaceRecords(recs)
	return len(recs), nil
}

// Search commits a query: it is filtered, paginated, recorded in history, and
// when it produced results, an auto-send run is scheduled after SettleDelay.
// Committing a new query cancels any pending or running auto-send.
func (s *Session) Search(query string, page, pageSize int) search.Page {
	q := strings.TrimSpace(query)

	s.mu.Lock()
	s.query = q
	s.history.Add(q)
	recs := s.records
	s.mu.Unlock()

	filtered := search.Filter(recs, q)
	result := search.Paginate(filtered, page, pageSize)

	s.cancelAutoSend()
	if q != "" && len(filtered) > 0 && s.dispatcher != nil {
		s.scheduleAutoSend(q, filtered)
	}
	return result
}

// Suggest returns autocomplete entries for a partial query without committing
// it.
func (s *Session) Suggest(query string) []models.Suggestion {
	return search.Suggest(s.Records(), query)
}

// Stats tallies the gender split of the full data set.
func (s *Session) Stats() models.GenderStats {
	return search.Stats(s.Records())
}

// History returns the committed queries, most recent first.
func (s *Session) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Entries()
}

// Find looks a record up by id.
func (s *Session) Find(id string) (models.VoterRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return models.VoterRecord{}, false
}

// PatchRecord applies confirmed field updates to the in-memory copy of one
// record. Nil fields are left alone.
func (s *Session) PatchRecord(id string, mobile, houseNumber *string) (models.VoterRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID != id {
			continue
		}
		if mobile != nil {
			r.MobileNumber = *mobile
		}
		if houseNumber != nil {
			r.HouseNumber = *houseNumber
		}
		s.records[i] = r
		return r, true
	}
	return models.VoterRecord{}, false
}

// Close stops any pending or running auto-send.
func (s *Session) Close() {
	s.cancelAutoSend()
}
