// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP endpoints to their handlers.

Routes use Go 1.22+ method-aware patterns:

	GET  /health                    - health check
	GET  /api/voters/search         - committed search with pagination
	GET  /api/voters/suggest        - autocomplete suggestions
	GET  /api/voters/stats          - gender statistics
	GET  /api/voters/history        - recent committed queries
	POST /api/voters/reload         - re-fetch the data set
	POST /api/voters/update         - push a field update to the remote store
	GET  /api/endpoints/health      - data endpoint health snapshot
	POST /api/messages/send         - send one voter's details over WhatsApp
	GET  /api/messages/autosend     - auto-send run status
	POST /api/whatsapp-send         - embedded WhatsApp gateway
*/
package router
