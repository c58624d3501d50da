// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP endpoints.

Three handler groups cover the API surface:

  - VoterHandler: search, suggestions, stats, query history, data reload,
    field updates, and the data-endpoint health snapshot
  - MessageHandler: single-voter WhatsApp sends and the auto-send status
  - GatewayHandler: the embedded WhatsApp gateway that forwards send
    requests to the upstream provider

Handlers parse and validate input, delegate to the session, dispatch and
updater layers, and map their errors onto HTTP status codes. Remote-store
and gateway failures surface as 502 so the frontend can distinguish "our
request was bad" from "an upstream is down".
*/
package handlers
