// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package compose

import (
	"fmt"
	"strings"

	"github.com/nanawalke/voter-search/models"
)

// Organization identity stamped onto every outgoing message.
const (
	OrgName    = "Nana Walke Foundation"
	orgAddress = "Chhatrapati Sambhajinagar, Maharashtra"

	orgLatitude  = 19.8762
	orgLongitude = 75.3433
)

const blankField = "-"

// Text renders the WhatsApp voter-details message for one record. Blank
// fields render as "-" so the card keeps its shape, and the Marathi gender
// label wins over the English one when both are present.
func Text(r models.VoterRecord) string {
	gender := strings.TrimSpace(r.GenderMarathi)
	if gender == "" {
		gender = strings.TrimSpace(r.GenderEnglish)
	}

	var b strings.Builder
	b.WriteString("📋 *मतदार माहिती*\n\n")
	fmt.Fprintf(&b, "🏷️ *अनु क्र.:* %s\n", orBlank(r.SerialNumber))
	fmt.Fprintf(&b, "🏠 *घर क्र.:* %s\n", orBlank(r.HouseNumber))
	fmt.Fprintf(&b, "👤 *नाव (मराठी):* %s\n", orBlank(CollapseRepeats(r.NameMarathi)))
	fmt.Fprintf(&b, "👤 *नाव (इंग्रजी):* %s\n", orBlank(CollapseRepeats(r.NameEnglish)))
	fmt.Fprintf(&b, "⚧️ *लिंग:* %s\n", orBlank(gender))
	fmt.Fprintf(&b, "🎂 *वय:* %s\n", orBlank(r.Age))
	fmt.Fprintf(&b, "🆔 *मतदान कार्ड क्र.:* %s\n", orBlank(r.VoterIDCard))
	fmt.Fprintf(&b, "📱 *मोबाइल नं.:* %s\n", orBlank(r.MobileNumber))
	b.WriteString("\n" + OrgName)
	return b.String()
}

func orBlank(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return blankField
	}
	return v
}

// CollapseRepeats removes tokens that already appeared earlier in the field,
// case-insensitively. Imported rolls sometimes duplicate a surname when two
// source columns were concatenated.
func CollapseRepeats(field string) string {
	tokens := strings.Fields(field)
	if len(tokens) < 2 {
		return strings.TrimSpace(field)
	}
	seen := make(map[string]bool, len(tokens))
	kept := tokens[:0]
	for _, tok := range tokens {
		key := strings.ToLower(tok)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// OrgLocation is the office location attached to messages sent with a map
// pin.
func OrgLocation() models.Location {
	return models.Location{
		Latitude:  orgLatitude,
		Longitude: orgLongitude,
		Name:      OrgName,
		Address:   orgAddress,
	}
}

// MapsLink renders a shareable Google Maps URL for a location.
func MapsLink(loc models.Location) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%g,%g", loc.Latitude, loc.Longitude)
}

// TextWithLocation appends the office map link to the voter-details message,
// for gateways that cannot send a native location payload.
func TextWithLocation(r models.VoterRecord) string {
	return Text(r) + "\n📍 " + MapsLink(OrgLocation())
}
