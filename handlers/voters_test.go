// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nanawalke/voter-search/balancer"
	"github.com/nanawalke/voter-search/loader"
	"github.com/nanawalke/voter-search/models"
	"github.com/nanawalke/voter-search/session"
	"github.com/nanawalke/voter-search/testutil"
	"github.com/nanawalke/voter-search/updater"
)

// updateStore is a stub remote voter store.
type updateStore struct {
	payloads []models.RemoteUpdatePayload
	reply    string
}

func (s *updateStore) serve(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p models.RemoteUpdatePayload
		json.NewDecoder(r.Body).Decode(&p)
		s.payloads = append(s.payloads, p)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(s.reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newVoterHandler(t *testing.T, dataURLs []string, storeURL string) (*VoterHandler, *session.Session) {
	t.Helper()

	lb := balancer.New(dataURLs, balancer.StrategyFailover)
	sess := session.New(loader.New(lb), nil)
	t.Cleanup(sess.Close)
	sess.ReplaceRecords(testutil.SampleRecords())

	return NewVoterHandler(sess, lb, updater.New(storeURL)), sess
}

func TestSearchDefaults(t *testing.T) {
	h, _ := newVoterHandler(t, []string{"http://localhost:0"}, "http://localhost:0")

	w := httptest.NewRecorder()
	h.Search(w, testutil.MakeRequest("GET", "/api/voters/search", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SearchResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Page != 1 || resp.PageSize != 100 {
		t.Errorf("Expected defaults page=1 page_size=100, got %+v", resp)
	}
	if resp.Total != 0 || len(resp.Data) != 0 {
		t.Errorf("Blank query should match nothing, got total=%d data=%v", resp.Total, resp.Data)
	}
}

func TestSearchWithQueryAndPaging(t *testing.T) {
	h, _ := newVoterHandler(t, []string{"http://localhost:0"}, "http://localhost:0")

	w := httptest.NewRecorder()
	h.Search(w, testutil.MakeRequest("GET", "/api/voters/search?q=jadhav&page=1&page_size=2", nil, nil))

	var resp models.SearchResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Query != "jadhav" || resp.Total != 1 || len(resp.Data) != 1 {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if resp.Data[0].ID != "3" {
		t.Errorf("Expected record 3, got %s", resp.Data[0].ID)
	}
}

func TestSearchBadPageParamsFallBack(t *testing.T) {
	h, _ := newVoterHandler(t, []string{"http://localhost:0"}, "http://localhost:0")

	w := httptest.NewRecorder()
	h.Search(w, testutil.MakeRequest("GET", "/api/voters/search?page=abc&page_size=-5", nil, nil))

	var resp models.SearchResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Page != 1 || resp.PageSize != 100 {
		t.Errorf("Bad params should fall back to defaults, got %+v", resp)
	}
}

func TestSuggestEndpoint(t *testing.T) {
	h, _ := newVoterHandler(t, []string{"http://localhost:0"}, "http://localhost:0")

	w := httptest.NewRecorder()
	h.Suggest(w, testutil.MakeRequest("GET", "/api/voters/suggest?q=su", nil, nil))

	var resp models.SuggestResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Suggestions) != 1 || resp.Suggestions[0].Display != "Sunita Deshmukh" {
		t.Errorf("Unexpected suggestions: %+v", resp.Suggestions)
	}

	// Too-short queries return an empty list, not null
	w = httptest.NewRecorder()
	h.Suggest(w, testutil.MakeRequest("GET", "/api/voters/suggest?q=s", nil, nil))
	testutil.AssertJSON(t, w, &resp)
	if resp.Suggestions == nil || len(resp.Suggestions) != 0 {
		t.Errorf("Expected empty suggestions, got %+v", resp.Suggestions)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	h, sess := newVoterHandler(t, []string{"http://localhost:0"}, "http://localhost:0")

	sess.Search("ravi", 1, 100)
	sess.Search("jadhav", 1, 100)

	w := httptest.NewRecorder()
	h.History(w, testutil.MakeRequest("GET", "/api/voters/history", nil, nil))

	var resp models.HistoryResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Queries) != 2 || resp.Queries[0] != "jadhav" {
		t.Errorf("Unexpected history: %+v", resp.Queries)
	}
}

func TestReloadSuccess(t *testing.T) {
	dataSrv := testutil.NewVoterService(t, testutil.SampleRows())
	defer dataSrv.Close()

	h, sess := newVoterHandler(t, []string{dataSrv.URL}, "http://localhost:0")
	sess.ReplaceRecords(nil)

	w := httptest.NewRecorder()
	h.Reload(w, testutil.MakeRequest("POST", "/api/voters/reload", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ReloadResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success || resp.Records != 3 {
		t.Errorf("Unexpected reload response: %+v", resp)
	}
	if len(sess.Records()) != 3 {
		t.Errorf("Session should hold the reloaded records")
	}
}

func TestReloadFailure(t *testing.T) {
	dataSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer dataSrv.Close()

	h, _ := newVoterHandler(t, []string{dataSrv.URL}, "http://localhost:0")

	w := httptest.NewRecorder()
	h.Reload(w, testutil.MakeRequest("POST", "/api/voters/reload", nil, nil))

	testutil.AssertStatus(t, w, http.StatusBadGateway)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message == "" {
		t.Error("Expected a user-facing failure message")
	}
}

func TestUpdateSuccess(t *testing.T) {
	store := &updateStore{reply: `{"status":"success"}`}
	storeSrv := store.serve(t)

	h, sess := newVoterHandler(t, []string{"http://localhost:0"}, storeSrv.URL)

	mobile := "9011223344"
	w := httptest.NewRecorder()
	h.Update(w, testutil.MakeRequest("POST", "/api/voters/update",
		models.UpdateVoterRequest{VoterID: "1", Mobile: &mobile}, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.UpdateVoterResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success || resp.Voter.MobileNumber != "9011223344" {
		t.Errorf("Unexpected update response: %+v", resp)
	}

	// The remote store saw the record's identifiers
	if len(store.payloads) != 1 {
		t.Fatalf("Expected 1 store call, got %d", len(store.payloads))
	}
	p := store.payloads[0]
	if p.EpicID != "ABC1234567" || p.Mobile != "9011223344" || p.SerialNo != "101" {
		t.Errorf("Unexpected store payload: %+v", p)
	}

	// The in-memory copy was patched
	r, _ := sess.Find("1")
	if r.MobileNumber != "9011223344" {
		t.Errorf("Session record not patched: %+v", r)
	}
}

func TestUpdateUnknownVoter(t *testing.T) {
	h, _ := newVoterHandler(t, []string{"http://localhost:0"}, "http://localhost:0")

	w := httptest.NewRecorder()
	h.Update(w, testutil.MakeRequest("POST", "/api/voters/update",
		models.UpdateVoterRequest{VoterID: "999"}, nil))

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestUpdateInvalidMobile(t *testing.T) {
	store := &updateStore{reply: `{"status":"success"}`}
	storeSrv := store.serve(t)

	h, _ := newVoterHandler(t, []string{"http://localhost:0"}, storeSrv.URL)

	mobile := "12345"
	w := httptest.NewRecorder()
	h.Update(w, testutil.MakeRequest("POST", "/api/voters/update",
		models.UpdateVoterRequest{VoterID: "1", Mobile: &mobile}, nil))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
	if len(store.payloads) != 0 {
		t.Error("Validation failures must not reach the remote store")
	}
}

func TestUpdateStoreRejection(t *testing.T) {
	store := &updateStore{reply: `{"status":"error","message":"voter not found"}`}
	storeSrv := store.serve(t)

	h, sess := newVoterHandler(t, []string{"http://localhost:0"}, storeSrv.URL)

	mobile := "9011223344"
	w := httptest.NewRecorder()
	h.Update(w, testutil.MakeRequest("POST", "/api/voters/update",
		models.UpdateVoterRequest{VoterID: "1", Mobile: &mobile}, nil))

	testutil.AssertStatus(t, w, http.StatusBadGateway)

	// Local copy must stay untouched when the store did not confirm
	r, _ := sess.Find("1")
	if r.MobileNumber != "9090385555" {
		t.Errorf("Record must not change on store rejection: %+v", r)
	}
}

func TestEndpointsHealth(t *testing.T) {
	h, _ := newVoterHandler(t, []string{"http://a.invalid", "http://b.invalid"}, "http://localhost:0")

	w := httptest.NewRecorder()
	h.EndpointsHealth(w, testutil.MakeRequest("GET", "/api/endpoints/health", nil, nil))

	var snap []models.EndpointHealth
	testutil.AssertJSON(t, w, &snap)
	if len(snap) != 2 {
		t.Fatalf("Expected 2 endpoints, got %d", len(snap))
	}
	if !snap[0].Healthy || !snap[1].Healthy {
		t.Error("Endpoints should start healthy")
	}
}
