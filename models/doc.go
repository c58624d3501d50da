// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the shared data types for the voter-search service.

# Domain Types

VoterRecord is the canonical record shape held in memory. The source of truth
is the remote voter-data service; a record is retained only when at least one
of its name fields is non-blank. The ID field is the ownership key for edit and
selection state, while VoterIDCard is the immutable natural key used for remote
persistence writes.

# Wire Types

The external interfaces are mirrored here:

  - The messaging gateway request/response (GatewaySendRequest et al.)
  - The upstream provider payloads (ProviderPayload, ProviderResponse)
  - The remote field-update endpoint (RemoteUpdatePayload, RemoteUpdateResult)

The remote voter-data service envelope is decoded in package decode, which
classifies raw bodies before any business logic consumes them.

# Error Responses

All handlers report failures as ErrorResponse with a status text and an
optional human-readable message.
*/
package models
