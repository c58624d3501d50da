// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package compose builds the outgoing WhatsApp message bodies and the
// organization's location payload.
package compose
