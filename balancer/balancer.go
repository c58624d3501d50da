// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package balancer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nanawalke/voter-search/decode"
	"github.com/nanawalke/voter-search/models"
)

// Strategy selects how the next data endpoint is chosen among healthy ones.
type Strategy string

const (
	StrategyFailover   Strategy = "failover"
	StrategyRoundRobin Strategy = "round-robin"
	StrategyRandom     Strategy = "random"
)

// ParseStrategy validates a configured strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyFailover, StrategyRoundRobin, StrategyRandom:
		return Strategy(s), nil
	case "":
		return StrategyFailover, nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

const (
	maxFailures          = 3
	defaultProbeInterval = 5 * time.Minute
	probeTimeout         = 10 * time.Second
	probeBodyLimit       = 1 << 20
)

type endpointState struct {
	healthy             bool
	lastChecked         time.Time
	responseTime        time.Duration
	consecutiveFailures int
	successCount        int
}

// LoadBalancer owns liveness and latency state for the configured data
// endpoints plus the round-robin cursor. It is constructed once per process
// and injected into the loader; there is no package-level state.
// Thread-safe: all methods may be called concurrently.
type LoadBalancer struct {
	mu       sync.RWMutex
	urls     []string // configured priority order
	state    map[string]*endpointState
	next     int // round-robin cursor, shared across calls
	strategy Strategy

	// ProbeInterval controls how often Run re-checks endpoints that have not
	// been touched by a load in the meantime. Set before calling Run.
	ProbeInterval time.Duration

	checkFunc func(ctx context.Context, url string) error
	client    *http.Client
}

// New creates a balancer with every configured endpoint initialized healthy.
func New(urls []string, strategy Strategy) *LoadBalancer {
	lb := &LoadBalancer{
		urls:          urls,
		state:         make(map[string]*endpointState, len(urls)),
		strategy:      strategy,
		ProbeInterval: defaultProbeInterval,
		client:        &http.Client{Timeout: probeTimeout},
	}
	now := time.Now()
	for _, u := range urls {
		lb.state[u] = &endpointState{healthy: true, lastChecked: now}
	}
	lb.checkFunc = lb.defaultCheck
	return lb
}

// RecordOutcome folds one load or probe result into the endpoint's health.
// Three consecutive failures mark an endpoint unhealthy; a single success
// recovers it.
func (lb *LoadBalancer) RecordOutcome(url string, ok bool, latency time.Duration) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	st, exists := lb.state[url]
	if !exists {
		return
	}
	st.lastChecked = time.Now()
	st.responseTime = latency

	if ok {
		if !st.healthy {
			slog.Info("data endpoint recovered", "endpoint", url)
		}
		st.healthy = true
		st.consecutiveFailures = 0
		st.successCount++
		return
	}

	st.consecutiveFailures++
	if st.consecutiveFailures >= maxFailures && st.healthy {
		st.healthy = false
		slog.Warn("data endpoint marked unhealthy",
			"endpoint", url,
			"consecutive_failures", st.consecutiveFailures,
		)
	}
}

// Pick returns one endpoint according to the configured strategy. When no
// endpoint is healthy the full configured list is used instead, so a load is
// always attempted somewhere.
func (lb *LoadBalancer) Pick() string {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.pickLocked()
}

func (lb *LoadBalancer) pickLocked() string {
	pool := lb.healthyLocked()
	if len(pool) == 0 {
		pool = lb.urls
	}
	if len(pool) == 0 {
		return ""
	}

	switch lb.strategy {
	case StrategyRoundRobin:
		u := pool[lb.next%len(pool)]
		lb.next++
		return u
	case StrategyRandom:
		return pool[rand.IntN(len(pool))]
	default: // failover: fixed priority order
		return pool[0]
	}
}

// Candidates returns the preferred endpoint first and every other configured
// endpoint after it, in configured order, for sequential failover.
func (lb *LoadBalancer) Candidates() []string {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	preferred := lb.pickLocked()
	out := make([]string, 0, len(lb.urls))
	if preferred != "" {
		out = append(out, preferred)
	}
	for _, u := range lb.urls {
		if u != preferred {
			out = append(out, u)
		}
	}
	return out
}

func (lb *LoadBalancer) healthyLocked() []string {
	var out []string
	for _, u := range lb.urls {
		if lb.state[u].healthy {
			out = append(out, u)
		}
	}
	return out
}

// Snapshot returns a copy of every endpoint's health record in configured order.
func (lb *LoadBalancer) Snapshot() []models.EndpointHealth {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	out := make([]models.EndpointHealth, 0, len(lb.urls))
	for _, u := range lb.urls {
		st := lb.state[u]
		out = append(out, models.EndpointHealth{
			URL:                 u,
			Healthy:             st.healthy,
			LastChecked:         st.lastChecked,
			ResponseTimeMs:      st.responseTime.Milliseconds(),
			ConsecutiveFailures: st.consecutiveFailures,
			SuccessCount:        st.successCount,
		})
	}
	return out
}

// SetCheckFunc overrides the probe request, for tests.
func (lb *LoadBalancer) SetCheckFunc(f func(ctx context.Context, url string) error) {
	lb.checkFunc = f
}

// Run probes stale endpoints on a fixed interval until ctx is cancelled.
// Endpoints touched by a recent load are skipped; only ones whose last check
// is older than the interval get a fresh lightweight read.
func (lb *LoadBalancer) Run(ctx context.Context) {
	ticker := time.NewTicker(lb.ProbeInterval)
	defer ticker.Stop()

	slog.Info("endpoint health probe started", "interval", lb.ProbeInterval)

	for {
		select {
		case <-ticker.C:
			lb.probeStale(ctx)
		case <-ctx.Done():
			slog.Info("endpoint health probe stopped")
			return
		}
	}
}

func (lb *LoadBalancer) probeStale(ctx context.Context) {
	lb.mu.RLock()
	var stale []string
	for _, u := range lb.urls {
		if time.Since(lb.state[u].lastChecked) >= lb.ProbeInterval {
			stale = append(stale, u)
		}
	}
	lb.mu.RUnlock()

	for _, u := range stale {
		start := time.Now()
		err := lb.checkFunc(ctx, u)
		lb.RecordOutcome(u, err == nil, time.Since(start))
		if err != nil {
			slog.Warn("endpoint probe failed", "endpoint", u, "error", err)
		}
	}
}

// defaultCheck issues a one-record read and accepts the endpoint only when
// the body decodes to a voter array, bare or enveloped.
func (lb *LoadBalancer) defaultCheck(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ProbeURL(url), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := lb.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, probeBodyLimit))
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("probe returned status %d", resp.StatusCode)
	}
	if _, _, err := decode.Voters(body); err != nil {
		return err
	}
	return nil
}

// ProbeURL appends the lightweight probe query to a configured endpoint.
func ProbeURL(url string) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "page=1&limit=1"
}
