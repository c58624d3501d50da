// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/nanawalke/voter-search/compose"
	"github.com/nanawalke/voter-search/dispatch"
	"github.com/nanawalke/voter-search/models"
)

// scheduleAutoSend arms the settle timer for a committed query's results.
// The caller has already cancelled the previous run.
func (s *Session) scheduleAutoSend(query string, results []models.VoterRecord) {
	ctx, cancel := context.WithCancel(context.Background())

	s.autoMu.Lock()
	s.autoCancel = cancel
	s.autoStatus = models.AutoSendStatus{}
	s.autoTimer = time.AfterFunc(s.SettleDelay, func() {
		s.runAutoSend(ctx, query, results)
	})
	s.autoMu.Unlock()
}

func (s *Session) runAutoSend(ctx context.Context, query string, results []models.VoterRecord) {
	if ctx.Err() != nil {
		return
	}

	s.autoMu.Lock()
	s.autoStatus.Running = true
	s.autoMu.Unlock()

	slog.Info("auto-send starting", "query", query, "results", len(results))

	report := s.dispatcher.BulkSend(ctx, results, compose.Text, func(rep dispatch.BulkReport) {
		s.autoMu.Lock()
		s.autoStatus = models.AutoSendStatus{
			Running: true,
			RunID:   rep.RunID,
			Sent:    rep.Sent,
			Failed:  rep.Failed,
			Skipped: rep.Skipped,
		}
		s.autoMu.Unlock()
	})

	s.autoMu.Lock()
	s.autoStatus = models.AutoSendStatus{
		RunID:   report.RunID,
		Sent:    report.Sent,
		Failed:  report.Failed,
		Skipped: report.Skipped,
	}
	s.autoMu.Unlock()
}

// AutoSendStatus reports the pending, running or last finished auto-send.
func (s *Session) AutoSendStatus() models.AutoSendStatus {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()
	return s.autoStatus
}

func (s *Session) cancelAutoSend() {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()
	if s.autoTimer != nil {
		s.autoTimer.Stop()
		s.autoTimer = nil
	}
	if s.autoCancel != nil {
		s.autoCancel()
		s.autoCancel = nil
	}
}
