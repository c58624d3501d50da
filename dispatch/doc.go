// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dispatch delivers WhatsApp messages through the configured gateway
endpoints.

A send walks the endpoint list in order. Each attempt is classified from the
response body, not just the status code: an HTML page means the gateway is
not deployed there (try the next one), invalid JSON means a broken gateway
(also try the next), and a JSON object is inspected for the gateway envelope
or a passed-through provider response. Provider rejections with code 400 or
401 are terminal because no other gateway can fix a bad message or bad
credentials. If every endpoint turned out to be unreachable the caller gets
ErrGatewayUnreachable so the operator-facing error can say so.

BulkSend paces sequential sends over a capped slice of eligible records and
reports a running sent/failed/skipped tally.
*/
package dispatch
