// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line flag and environment configuration.

Flags take precedence over environment variables. Network knobs (port, data
endpoints, selection strategy, gateway endpoints, provider and update URLs)
carry sensible defaults; the messaging credentials do not:

	WHATSAPP_PHONE_NUMBER_ID  required
	WHATSAPP_API_KEY          required

A missing credential is a startup error rather than a silent fallback to a
baked-in key.

Endpoint lists are comma-separated and given in priority order; the first
entry is the preferred candidate for failover selection.
*/
package cliparse
