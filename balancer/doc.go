// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package balancer tracks liveness and latency for the configured voter-data
endpoints and selects which one a load should try first.

Every endpoint starts healthy. Loads and probes feed outcomes back through
RecordOutcome; three consecutive failures mark an endpoint unhealthy and a
single success recovers it. Selection supports three strategies:

  - failover: always the first healthy endpoint in configured order (default)
  - round-robin: cycles a shared cursor across healthy endpoints
  - random: uniform pick among healthy endpoints

When no endpoint is healthy, selection falls back to the full configured list
so the service never refuses to attempt a load.

Run drives a periodic background probe that re-checks any endpoint not
touched within the interval, using a one-record read that must decode to a
voter payload to count as healthy.
*/
package balancer
