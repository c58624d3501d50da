// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nanawalke/voter-search/balancer"
	"github.com/nanawalke/voter-search/dispatch"
	"github.com/nanawalke/voter-search/models"
	"github.com/nanawalke/voter-search/session"
	"github.com/nanawalke/voter-search/testutil"
	"github.com/nanawalke/voter-search/updater"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	_, gwSrv := testutil.NewGateway(t)
	t.Cleanup(gwSrv.Close)

	cfg := testutil.GetTestConfig()
	lb := balancer.New(cfg.DataEndpoints, balancer.StrategyFailover)
	d := dispatch.New([]string{gwSrv.URL}, cfg.PhoneNumberID, cfg.APIKey)
	d.SendDelay = time.Millisecond
	up := updater.New(cfg.UpdateURL)

	sess := session.New(nil, d)
	sess.SettleDelay = time.Hour // keep auto-send out of routing tests
	t.Cleanup(sess.Close)
	sess.ReplaceRecords(testutil.SampleRecords())

	return NewRouter(sess, lb, d, up, cfg)
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/health", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "voter-search API v1" {
		t.Errorf("Unexpected root body: '%s'", w.Body.String())
	}
}

func TestSearchRoute(t *testing.T) {
	mux := newTestMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/voters/search?q=ravi", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SearchResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success || resp.Total != 1 {
		t.Errorf("Unexpected search response: %+v", resp)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "1" {
		t.Errorf("Unexpected search data: %+v", resp.Data)
	}
}

func TestStatsRoute(t *testing.T) {
	mux := newTestMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/voters/stats", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var stats models.GenderStats
	testutil.AssertJSON(t, w, &stats)
	if stats.Total != 3 || stats.Males != 2 || stats.Females != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestEndpointsHealthRoute(t *testing.T) {
	mux := newTestMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/endpoints/health", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var snap []models.EndpointHealth
	testutil.AssertJSON(t, w, &snap)
	if len(snap) != 1 || !snap[0].Healthy {
		t.Errorf("Unexpected health snapshot: %+v", snap)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/api/voters/search", nil, nil))

	testutil.AssertStatus(t, w, http.StatusMethodNotAllowed)
}

func TestSendRouteValidation(t *testing.T) {
	mux := newTestMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/messages/send",
		models.SendMessageRequest{}, nil))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
