// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/nanawalke/voter-search/balancer"
	"github.com/nanawalke/voter-search/decode"
	"github.com/nanawalke/voter-search/models"
	"github.com/nanawalke/voter-search/normalize"
)

const (
	probeLimit      = 10
	pageSize        = 2000
	pageConcurrency = 5
	partialEvery    = 3 // batches between partial snapshots

	probeTimeout = 15 * time.Second
	pageTimeout  = 60 * time.Second
	fullTimeout  = 120 * time.Second
)

// Loader fetches the complete voter record set from the first data endpoint
// that answers usably, preferring batched page fetches when the endpoint
// advertises pagination. Concurrent LoadAll calls coalesce into one flight.
type Loader struct {
	lb     *balancer.LoadBalancer
	client *http.Client
	group  singleflight.Group

	// OnPartial, when set, receives normalized snapshots of the records
	// accumulated so far during a paginated load, so callers can render
	// progressively before the full load completes.
	OnPartial func([]models.VoterRecord)
}

func New(lb *balancer.LoadBalancer) *Loader {
	// Timeouts are per request via context, not on the client.
	return &Loader{lb: lb, client: &http.Client{}}
}

// LoadAll returns the full normalized record set. A load already in progress
// is joined, not restarted.
func (l *Loader) LoadAll(ctx context.Context) ([]models.VoterRecord, error) {
	v, err, _ := l.group.Do("load-all", func() (any, error) {
		return l.loadAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.VoterRecord), nil
}

func (l *Loader) loadAll(ctx context.Context) ([]models.VoterRecord, error) {
	candidates := l.lb.Candidates()
	if len(candidates) == 0 {
		return nil, &Error{Kind: FailMalformed, Err: errors.New("no data endpoints configured")}
	}

	var lastErr error
	for _, endpoint := range candidates {
		start := time.Now()
		recs, err := l.loadFrom(ctx, endpoint)
		elapsed := time.Since(start)

		if err == nil {
			l.lb.RecordOutcome(endpoint, true, elapsed)
			slog.Info("voter load complete",
				"endpoint", endpoint,
				"records", humanize.Comma(int64(len(recs))),
				"elapsed", elapsed.Round(time.Millisecond),
			)
			return recs, nil
		}

		l.lb.RecordOutcome(endpoint, false, elapsed)
		slog.Warn("voter load failed", "endpoint", endpoint, "error", err)
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

// loadFrom attempts one endpoint: a small probe decides between the paginated
// path and a single full-collection request.
func (l *Loader) loadFrom(ctx context.Context, endpoint string) ([]models.VoterRecord, error) {
	_, meta, err := l.fetch(ctx, pageURL(endpoint, 1, probeLimit), probeTimeout)
	if err == nil && meta.Enveloped && meta.TotalCount > 0 {
		return l.loadPaginated(ctx, endpoint, meta.TotalCount)
	}
	// Probe inconclusive: either the endpoint has no pagination envelope or
	// the small read failed outright. One large request decides.
	return l.loadFull(ctx, endpoint)
}

func (l *Loader) loadPaginated(ctx context.Context, endpoint string, totalCount int) ([]models.VoterRecord, error) {
	totalPages := (totalCount + pageSize - 1) / pageSize
	pages := make([][]map[string]any, totalPages)

	slog.Info("paginated load starting",
		"endpoint", endpoint,
		"total_records", humanize.Comma(int64(totalCount)),
		"total_pages", totalPages,
	)

	batch := 0
	for first := 1; first <= totalPages; first += pageConcurrency {
		g, gctx := errgroup.WithContext(ctx)
		last := min(first+pageConcurrency-1, totalPages)

		for page := first; page <= last; page++ {
			g.Go(func() error {
				rows, _, err := l.fetch(gctx, pageURL(endpoint, page, pageSize), pageTimeout)
				if err != nil {
					// One lost page does not abort the load.
					slog.Warn("page fetch failed", "endpoint", endpoint, "page", page, "error", err)
					return nil
				}
				pages[page-1] = rows
				return nil
			})
		}
		g.Wait()

		if ctx.Err() != nil {
			return nil, classifyTransport(endpoint, ctx.Err())
		}

		batch++
		if l.OnPartial != nil && batch%partialEvery == 0 && last < totalPages {
			partial := normalize.Records(flatten(pages))
			slog.Info("partial snapshot ready",
				"endpoint", endpoint,
				"records", humanize.Comma(int64(len(partial))),
				"pages_done", last,
			)
			l.OnPartial(partial)
		}
	}

	recs := normalize.Records(flatten(pages))
	if len(recs) == 0 {
		return nil, &Error{
			Kind:     FailMalformed,
			Endpoint: endpoint,
			Err:      errors.New("paginated load produced no records"),
		}
	}
	return recs, nil
}

func (l *Loader) loadFull(ctx context.Context, endpoint string) ([]models.VoterRecord, error) {
	rows, _, err := l.fetch(ctx, endpoint, fullTimeout)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &Error{
			Kind:     FailMalformed,
			Endpoint: endpoint,
			Err:      errors.New("endpoint returned an empty record array"),
		}
	}
	return normalize.Records(rows), nil
}

// fetch issues one GET and classifies everything that can go wrong with it.
func (l *Loader) fetch(ctx context.Context, url string, timeout time.Duration) ([]map[string]any, decode.Meta, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, decode.Meta{}, &Error{Kind: FailMalformed, Endpoint: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, decode.Meta{}, classifyTransport(url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, decode.Meta{}, classifyTransport(url, err)
	}

	if resp.StatusCode >= 400 {
		// An HTML error page on a 4xx/5xx still means the server answered.
		return nil, decode.Meta{}, &Error{
			Kind:     FailServer,
			Endpoint: url,
			Err:      fmt.Errorf("endpoint returned status %d", resp.StatusCode),
		}
	}

	rows, meta, err := decode.Voters(body)
	if err != nil {
		return nil, decode.Meta{}, &Error{Kind: FailMalformed, Endpoint: url, Err: err}
	}
	return rows, meta, nil
}

func classifyTransport(url string, err error) *Error {
	kind := FailNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		kind = FailTimeout
	}
	return &Error{Kind: kind, Endpoint: url, Err: err}
}

func flatten(pages [][]map[string]any) []map[string]any {
	total := 0
	for _, p := range pages {
		total += len(p)
	}
	out := make([]map[string]any, 0, total)
	for _, p := range pages {
		out = append(out, p...)
	}
	return out
}

func pageURL(endpoint string, page, limit int) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spage=%d&limit=%d", endpoint, sep, page, limit)
}
