// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package updater pushes mobile and address corrections to the remote voter
// store and verifies its explicit confirmation.
package updater
