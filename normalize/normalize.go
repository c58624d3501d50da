// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nanawalke/voter-search/models"
)

// Native-label field keys used by the already-canonical upstream shape.
const (
	KeySerial   = "अनु क्र."
	KeyHouse    = "घर क्र."
	KeyNameEn   = "नाव (इंग्रजी)"
	KeyNameMr   = "नाव (मराठी)"
	KeyGenderEn = "लिंग (इंग्रजी)"
	KeyGenderMr = "लिंग (मराठी)"
	KeyAge      = "वय"
	KeyEpic     = "मतदान कार्ड क्र."
	KeyMobile   = "मोबाईल नं."
)

// Records maps loosely-typed upstream rows into the canonical record shape.
// Rows with both name fields blank are dropped; everything else survives.
// Missing fields default to the empty string and numeric values are coerced
// to their string form. Output preserves input order.
//
// IDs come from the upstream _id (or id) field when present. A duplicate
// natural id is demoted to the record's 1-based position so that edit targets
// stay unambiguous.
func Records(raw []map[string]any) []models.VoterRecord {
	out := make([]models.VoterRecord, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, row := range raw {
		if row == nil {
			continue
		}
		rec := models.VoterRecord{
			SerialNumber:  field(row, "serialNumber", KeySerial),
			HouseNumber:   field(row, "houseNumber", KeyHouse),
			NameEnglish:   field(row, "name", KeyNameEn),
			NameMarathi:   field(row, "name_mr", KeyNameMr),
			GenderEnglish: field(row, "gender", KeyGenderEn),
			GenderMarathi: field(row, "gender_mr", KeyGenderMr),
			Age:           field(row, "age", KeyAge),
			VoterIDCard:   field(row, "voterIdCard", KeyEpic),
			MobileNumber:  field(row, "mobileNumber", KeyMobile),
		}
		if strings.TrimSpace(rec.NameEnglish) == "" && strings.TrimSpace(rec.NameMarathi) == "" {
			continue
		}

		id := field(row, "_id", "id")
		if id == "" || seen[id] {
			id = strconv.Itoa(len(out) + 1)
		}
		seen[id] = true
		rec.ID = id

		out = append(out, rec)
	}
	return out
}

// field returns the first present key's value coerced to a string.
func field(row map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := row[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case json.Number:
			return t.String()
		case int:
			return strconv.Itoa(t)
		default:
			return fmt.Sprint(t)
		}
	}
	return ""
}
