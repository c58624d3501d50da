// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/nanawalke/voter-search/cliparse"
	"github.com/nanawalke/voter-search/models"
)

// SampleRecords returns a small, stable voter roll for handler tests.
func SampleRecords() []models.VoterRecord {
	return []models.VoterRecord{
		{ID: "1", SerialNumber: "101", HouseNumber: "12A", NameEnglish: "Ravi Kumar Patil", NameMarathi: "रवी कुमार पाटील", GenderEnglish: "Male", GenderMarathi: "पुरुष", Age: "45", VoterIDCard: "ABC1234567", MobileNumber: "9090385555"},
		{ID: "2", SerialNumber: "102", HouseNumber: "13", NameEnglish: "Sunita Deshmukh", NameMarathi: "सुनिता देशमुख", GenderEnglish: "Female", GenderMarathi: "स्त्री", Age: "38", VoterIDCard: "XYZ7654321", MobileNumber: "9822001122"},
		{ID: "3", SerialNumber: "103", HouseNumber: "14", NameEnglish: "Amol Jadhav", NameMarathi: "अमोल जाधव", GenderEnglish: "Male", GenderMarathi: "पुरुष", Age: "29", VoterIDCard: "PQR1112223", MobileNumber: ""},
	}
}

// SampleRows returns the same roll in the raw wire shape the data service
// uses.
func SampleRows() []map[string]any {
	rows := make([]map[string]any, 0)
	for _, r := range SampleRecords() {
		rows = append(rows, map[string]any{
			"_id":          r.ID,
			"serialNumber": r.SerialNumber,
			"houseNumber":  r.HouseNumber,
			"name":         r.NameEnglish,
			"name_mr":      r.NameMarathi,
			"gender":       r.GenderEnglish,
			"gender_mr":    r.GenderMarathi,
			"age":          r.Age,
			"voterIdCard":  r.VoterIDCard,
			"mobileNumber": r.MobileNumber,
		})
	}
	return rows
}

// NewVoterService starts a stub data endpoint serving rows behind the
// paginated success envelope. The caller owns Close.
func NewVoterService(t *testing.T, rows []map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = len(rows)
		}

		start := min((page-1)*limit, len(rows))
		end := min(start+limit, len(rows))
		totalPages := (len(rows) + limit - 1) / limit

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"data":       rows[start:end],
			"count":      end - start,
			"totalCount": len(rows),
			"totalPages": totalPages,
		})
	}))
}

// Gateway is a stub WhatsApp gateway that accepts every send and remembers
// the payloads.
type Gateway struct {
	mu       sync.Mutex
	Payloads []models.GatewaySendRequest
}

// NewGateway starts the stub. The caller owns Close on the returned server.
func NewGateway(t *testing.T) (*Gateway, *httptest.Server) {
	t.Helper()
	g := &Gateway{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p models.GatewaySendRequest
		json.NewDecoder(r.Body).Decode(&p)
		g.mu.Lock()
		g.Payloads = append(g.Payloads, p)
		n := len(g.Payloads)
		g.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.GatewaySendResponse{
			Success:     true,
			MessageID:   "wamid.TEST" + strconv.Itoa(n),
			PhoneNumber: p.PhoneNumber,
		})
	}))
	return g, srv
}

// Sent returns how many payloads the stub gateway has accepted.
func (g *Gateway) Sent() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Payloads)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3001,
		DataEndpoints:   []string{"http://localhost:0/api/voters/"},
		Strategy:        "failover",
		ProviderBaseURL: "http://localhost:0",
		UpdateURL:       "http://localhost:0/update_mobile.php",
		PhoneNumberID:   "1234567890",
		APIKey:          "test-key",
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
