// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the voter-search API server.

voter-search serves a multi-field fuzzy search over an in-memory voter roll,
fetched at startup from a set of upstream data endpoints, and sends voter
details to constituents over WhatsApp.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	WHATSAPP_PHONE_NUMBER_ID=... WHATSAPP_API_KEY=... go run main.go

Or with flags:

	go run main.go -p 3001 -phone-number-id "..." -api-key "..."

# Configuration

Required settings:

  - WHATSAPP_PHONE_NUMBER_ID (-phone-number-id): provider sender id
  - WHATSAPP_API_KEY (-api-key): provider API key

Optional settings:

  - PORT (-p): Server port (default: 3001)
  - DATA_ENDPOINTS (-data): comma-separated voter data endpoints
  - LOAD_STRATEGY (-strategy): failover, round-robin or random
  - GATEWAY_ENDPOINTS (-gateways): comma-separated WhatsApp gateway URLs
  - WHATSAPP_PROVIDER_URL (-provider): upstream provider base URL
  - UPDATE_URL (-update): remote voter store update endpoint

A .env file in the working directory is loaded first; real environment
variables take precedence.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (voters, messages, gateway)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and wire types
  - session: shared record set, committed query and auto-send state
  - search: filtering, suggestions, pagination, history
  - loader: data fetching with pagination and partial snapshots
  - balancer: data endpoint health and selection
  - normalize: upstream row canonicalization
  - decode: payload classification and envelope decoding
  - compose: WhatsApp message bodies
  - dispatch: resilient gateway delivery and bulk sends
  - updater: remote voter store updates
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
