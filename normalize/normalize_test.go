// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package normalize

import (
	"strings"
	"testing"
)

func TestRecords_MachineShape(t *testing.T) {
	raw := []map[string]any{
		{
			"_id":          "68f1a2",
			"serialNumber": float64(12),
			"houseNumber":  "4B",
			"name":         "Ravi Kumar",
			"name_mr":      "रवी कुमार",
			"gender":       "Male",
			"gender_mr":    "पुरुष",
			"age":          float64(30),
			"voterIdCard":  "ABC1234567",
			"mobileNumber": "9090385555",
		},
	}

	recs := Records(raw)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}

	r := recs[0]
	if r.ID != "68f1a2" {
		t.Errorf("expected natural id, got %q", r.ID)
	}
	if r.SerialNumber != "12" {
		t.Errorf("expected serial coerced to string, got %q", r.SerialNumber)
	}
	if r.Age != "30" {
		t.Errorf("expected age coerced to string, got %q", r.Age)
	}
	if r.NameEnglish != "Ravi Kumar" || r.NameMarathi != "रवी कुमार" {
		t.Errorf("unexpected names: %q / %q", r.NameEnglish, r.NameMarathi)
	}
}

func TestRecords_NativeLabelShape(t *testing.T) {
	raw := []map[string]any{
		{
			KeyNameEn: "Sunita Patil",
			KeyNameMr: "सुनीता पाटील",
			KeyMobile: "9822012345",
			KeyAge:    "42",
		},
	}

	recs := Records(raw)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].MobileNumber != "9822012345" {
		t.Errorf("native-label mobile not mapped: %q", recs[0].MobileNumber)
	}
	if recs[0].ID != "1" {
		t.Errorf("expected positional id 1, got %q", recs[0].ID)
	}
}

func TestRecords_DropsBlankNames(t *testing.T) {
	raw := []map[string]any{
		{"name": "Ravi Kumar"},
		{"name": "   ", "name_mr": ""},
		{"name_mr": "रवी"},
		{"mobileNumber": "9090385555"},
		nil,
	}

	recs := Records(raw)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	for _, r := range recs {
		if strings.TrimSpace(r.NameEnglish) == "" && strings.TrimSpace(r.NameMarathi) == "" {
			t.Errorf("record %q has both names blank", r.ID)
		}
	}
}

func TestRecords_MissingFieldsDefaultEmpty(t *testing.T) {
	recs := Records([]map[string]any{{"name": "Ravi"}})
	if len(recs) != 1 {
		t.Fatal("expected 1 record")
	}
	r := recs[0]
	if r.HouseNumber != "" || r.VoterIDCard != "" || r.MobileNumber != "" || r.Age != "" {
		t.Errorf("missing fields should default empty: %+v", r)
	}
}

func TestRecords_PositionalIDAfterFilter(t *testing.T) {
	raw := []map[string]any{
		{"name": ""},
		{"name": "First"},
		{"name": "Second"},
	}

	recs := Records(raw)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	// Positions count surviving records, not raw input rows.
	if recs[0].ID != "1" || recs[1].ID != "2" {
		t.Errorf("unexpected positional ids: %q, %q", recs[0].ID, recs[1].ID)
	}
}

func TestRecords_DuplicateNaturalIDDemoted(t *testing.T) {
	raw := []map[string]any{
		{"_id": "dup", "name": "First"},
		{"_id": "dup", "name": "Second"},
	}

	recs := Records(raw)
	if len(recs) != 2 {
		t.Fatalf("duplicate ids must not drop records, got %d", len(recs))
	}
	if recs[0].ID != "dup" {
		t.Errorf("first occurrence keeps the natural id, got %q", recs[0].ID)
	}
	if recs[1].ID == "dup" {
		t.Error("second occurrence must not reuse the natural id")
	}
}

func TestRecords_OrderPreserved(t *testing.T) {
	raw := []map[string]any{
		{"name": "A"}, {"name": "B"}, {"name": "C"},
	}
	recs := Records(raw)
	got := []string{recs[0].NameEnglish, recs[1].NameEnglish, recs[2].NameEnglish}
	if got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Errorf("order not preserved: %v", got)
	}
}
