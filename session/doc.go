// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session ties the data and messaging layers together around one shared
in-memory record set.

A committed search both answers the caller and arms the auto-send path: when
the same query's results are still current after the settle delay, the
matching records are bulk-messaged. Committing a different query first stops
the timer and cancels a run already in flight, so only the latest intent ever
sends.
*/
package session
