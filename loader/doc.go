// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package loader orchestrates fetching the complete voter record set.

Candidates come from the balancer in priority order; the first endpoint to
yield a usable payload wins, and its outcome (plus latency) is recorded back
into the balancer. Per endpoint the loader probes for a pagination envelope
first; a paginated endpoint is drained in parallel batches of five 2000-record
pages with partial snapshots pushed to OnPartial along the way, while an
unpaginated one gets a single long-timeout full-collection request. A single
lost page is logged and skipped rather than failing the load.

Total failures carry a FailKind (timeout, server, network, malformed) so the
handler layer can show the matching localized message.
*/
package loader
