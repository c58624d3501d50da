// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dispatch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPhone marks a number that cannot be normalized into a sendable
// Indian mobile number.
var ErrInvalidPhone = errors.New("invalid phone number")

var (
	nonDigits   = regexp.MustCompile(`\D`)
	indianLocal = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// NormalizePhone converts a free-form phone field into the E.164-style
// 91XXXXXXXXXX form the gateway expects. Punctuation and spaces are dropped
// and an existing 91 country prefix is removed before validating that the
// remainder is a ten-digit Indian mobile number.
func NormalizePhone(raw string) (string, error) {
	digits := nonDigits.ReplaceAllString(strings.TrimSpace(raw), "")
	digits = strings.TrimPrefix(digits, "91")
	if !indianLocal.MatchString(digits) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return "91" + digits, nil
}
