// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package loader

import "fmt"

// FailKind classifies a total load failure so the caller can render a
// human-readable status in the UI language.
type FailKind int

const (
	FailUnknown FailKind = iota
	FailTimeout
	FailServer
	FailNetwork
	FailMalformed
)

func (k FailKind) String() string {
	switch k {
	case FailTimeout:
		return "timeout"
	case FailServer:
		return "server-error"
	case FailNetwork:
		return "network-error"
	case FailMalformed:
		return "malformed-payload"
	}
	return "unknown"
}

// Error is a classified load failure for one endpoint, or for the whole load
// when every endpoint has been exhausted.
type Error struct {
	Kind     FailKind
	Endpoint string
	Err      error
}

func (e *Error) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("load %s: %s: %v", e.Endpoint, e.Kind, e.Err)
	}
	return fmt.Sprintf("load: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage renders the failure in the application's display language.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case FailTimeout:
		return "विनंती टाइमआउट! कृपया नंतर पुन्हा प्रयत्न करा."
	case FailServer:
		return "सर्व्हर त्रुटी! कृपया नंतर पुन्हा प्रयत्न करा."
	case FailNetwork:
		return "नेटवर्क त्रुटी: सर्व्हरशी कनेक्ट होऊ शकले नाही. कृपया इंटरनेट कनेक्शन तपासा."
	default:
		return "API कडून डेटा मिळवण्यात समस्या आली."
	}
}
