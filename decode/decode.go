// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Kind classifies a raw response body before any business logic consumes it.
type Kind int

const (
	KindEmpty Kind = iota
	KindHTMLError
	KindInvalidJSON
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindHTMLError:
		return "html-error"
	case KindInvalidJSON:
		return "invalid-json"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}
	return "unknown"
}

var (
	ErrEmptyBody   = errors.New("empty response body")
	ErrHTMLBody    = errors.New("response body is an HTML error page")
	ErrInvalidJSON = errors.New("response body is not valid JSON")
	ErrBadEnvelope = errors.New("response envelope is missing a success marker or data array")
)

// Markers that identify an error page from a web server or a PHP fatal
// error instead of an API response.
var htmlMarkers = []string{
	"<!DOCTYPE",
	"<!doctype",
	"<html",
	"<pre>",
	"Cannot POST",
	"Cannot GET",
	"Fatal error",
}

// Sniff classifies a raw body. JSON validity is checked before the HTML
// markers so that a JSON payload merely containing one of the marker strings
// is never misclassified.
func Sniff(body []byte) Kind {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return KindEmpty
	}
	if json.Valid(trimmed) {
		switch trimmed[0] {
		case '[':
			return KindArray
		case '{':
			return KindObject
		}
		// bare JSON scalar, useless to every caller
		return KindInvalidJSON
	}
	s := string(trimmed)
	for _, m := range htmlMarkers {
		if strings.Contains(s, m) {
			return KindHTMLError
		}
	}
	return KindInvalidJSON
}

// Err maps a non-payload Kind to its sentinel error, nil otherwise.
func Err(k Kind) error {
	switch k {
	case KindEmpty:
		return ErrEmptyBody
	case KindHTMLError:
		return ErrHTMLBody
	case KindInvalidJSON:
		return ErrInvalidJSON
	}
	return nil
}

// Meta carries the pagination hints a success envelope may expose.
type Meta struct {
	Enveloped  bool
	Count      int
	TotalCount int
	TotalPages int
}

type envelope struct {
	Success    bool             `json:"success"`
	Data       []map[string]any `json:"data"`
	Count      int              `json:"count"`
	TotalCount int              `json:"totalCount"`
	TotalPages int              `json:"totalPages"`
}

// Voters extracts the loosely-typed record rows from a voter-data response,
// accepting either a bare array or a success envelope.
func Voters(body []byte) ([]map[string]any, Meta, error) {
	kind := Sniff(body)
	switch kind {
	case KindArray:
		var rows []map[string]any
		if err := json.Unmarshal(bytes.TrimSpace(body), &rows); err != nil {
			return nil, Meta{}, ErrInvalidJSON
		}
		return rows, Meta{Count: len(rows)}, nil
	case KindObject:
		var env envelope
		if err := json.Unmarshal(bytes.TrimSpace(body), &env); err != nil {
			return nil, Meta{}, ErrInvalidJSON
		}
		if !env.Success || env.Data == nil {
			return nil, Meta{}, ErrBadEnvelope
		}
		meta := Meta{
			Enveloped:  true,
			Count:      env.Count,
			TotalCount: env.TotalCount,
			TotalPages: env.TotalPages,
		}
		if meta.Count == 0 {
			meta.Count = len(env.Data)
		}
		return env.Data, meta, nil
	default:
		return nil, Meta{}, Err(kind)
	}
}
