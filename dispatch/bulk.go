// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nanawalke/voter-search/models"
)

// BulkReport is the running (and final) tally of one bulk send.
type BulkReport struct {
	RunID     string `json:"runId"`
	Sent      int    `json:"sent"`
	Failed    int    `json:"failed"`
	Skipped   int    `json:"skipped"`
	Cancelled bool   `json:"cancelled"`
}

// BulkSend messages every record in records that carries a sendable mobile
// number, pacing sends SendDelay apart and stopping at BulkLimit. Records
// whose mobile fails NormalizePhone, and eligible records beyond the limit,
// count as skipped without an attempt. Cancelling ctx stops the run between
// sends.
//
// onProgress, when non-nil, receives the tally after every attempted send.
func (d *Dispatcher) BulkSend(ctx context.Context, records []models.VoterRecord, message func(models.VoterRecord) string, onProgress func(BulkReport)) BulkReport {
	report := BulkReport{RunID: uuid.NewString()}

	eligible := make([]models.VoterRecord, 0, len(records))
	for _, r := range records {
		if _, err := NormalizePhone(r.MobileNumber); err == nil {
			eligible = append(eligible, r)
		} else {
			report.Skipped++
		}
	}
	if len(eligible) > d.BulkLimit {
		report.Skipped += len(eligible) - d.BulkLimit
		eligible = eligible[:d.BulkLimit]
	}

	slog.Info("bulk send starting",
		"run_id", report.RunID,
		"eligible", len(eligible),
		"skipped", report.Skipped,
	)

	for i, r := range eligible {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}

		if _, err := d.Send(ctx, r.MobileNumber, message(r)); err != nil {
			report.Failed++
			slog.Warn("bulk send failed for record", "run_id", report.RunID, "voter_id", r.ID, "error", err)
		} else {
			report.Sent++
		}
		if onProgress != nil {
			onProgress(report)
		}

		if i < len(eligible)-1 {
			select {
			case <-time.After(d.SendDelay):
			case <-ctx.Done():
				report.Cancelled = true
			}
		}
	}
	if report.Cancelled {
		slog.Info("bulk send cancelled", "run_id", report.RunID, "sent", report.Sent)
	} else {
		slog.Info("bulk send finished",
			"run_id", report.RunID,
			"sent", report.Sent,
			"failed", report.Failed,
			"skipped", report.Skipped,
		)
	}
	return report
}
