// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package normalize maps heterogeneous upstream voter rows into the canonical
// VoterRecord shape. It accepts both the machine-field shape (name, name_mr,
// age, ...) and the native-label shape keyed by Marathi column headers, drops
// rows without a usable name, and guarantees unique record ids.
package normalize
