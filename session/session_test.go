// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanawalke/voter-search/dispatch"
	"github.com/nanawalke/voter-search/models"
)

var sessionRecords = []models.VoterRecord{
	{ID: "1", NameEnglish: "Ravi Kumar Patil", NameMarathi: "रवी कुमार पाटील", GenderEnglish: "Male", MobileNumber: "9090385555", VoterIDCard: "ABC1234567"},
	{ID: "2", NameEnglish: "Sunita Deshmukh", GenderEnglish: "Female", MobileNumber: "9822001122"},
	{ID: "3", NameEnglish: "Amol Jadhav", GenderEnglish: "Male", MobileNumber: ""},
}

// countingGateway accepts every send and counts the recipients it saw.
type countingGateway struct {
	mu     sync.Mutex
	phones []string
}

func (g *countingGateway) serve() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p models.GatewaySendRequest
		json.NewDecoder(r.Body).Decode(&p)
		g.mu.Lock()
		g.phones = append(g.phones, p.PhoneNumber)
		g.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message_id":"wamid.T"}`))
	}))
}

func (g *countingGateway) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.phones)
}

func newTestSession(t *testing.T) (*Session, *countingGateway) {
	t.Helper()
	gw := &countingGateway{}
	srv := gw.serve()
	t.Cleanup(srv.Close)

	d := dispatch.New([]string{srv.URL}, "1234567890", "test-key")
	d.SendDelay = time.Millisecond
	d.LocationDelay = time.Millisecond

	s := New(nil, d)
	s.SettleDelay = 20 * time.Millisecond
	t.Cleanup(s.Close)

	s.ReplaceRecords(sessionRecords)
	return s, gw
}

func TestSearchCommitsQueryAndHistory(t *testing.T) {
	s, _ := newTestSession(t)

	page := s.Search("ravi", 1, 100)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "1", page.Records[0].ID)
	assert.Equal(t, 1, page.TotalPages)

	s.Search("jadhav", 1, 100)
	assert.Equal(t, []string{"jadhav", "ravi"}, s.History())
}

func TestSearchTriggersAutoSendAfterSettle(t *testing.T) {
	s, gw := newTestSession(t)

	s.Search("ravi", 1, 100)
	assert.Equal(t, 0, gw.count(), "nothing sends before the settle delay")

	require.Eventually(t, func() bool {
		st := s.AutoSendStatus()
		return !st.Running && st.Sent == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, gw.count())
}

func TestNewQueryCancelsPendingAutoSend(t *testing.T) {
	s, gw := newTestSession(t)

	s.Search("ravi", 1, 100)
	s.Search("", 1, 100) // clearing the query disarms the run

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, gw.count())
}

func TestAutoSendSkipsRecordsWithoutMobile(t *testing.T) {
	s, gw := newTestSession(t)

	// "a" appears in every record's English name.
	s.Search("a", 1, 100)

	require.Eventually(t, func() bool {
		st := s.AutoSendStatus()
		return !st.Running && st.RunID != ""
	}, 2*time.Second, 10*time.Millisecond)

	st := s.AutoSendStatus()
	assert.Equal(t, 2, st.Sent)
	assert.Equal(t, 1, st.Skipped)
	assert.Equal(t, 2, gw.count())
}

func TestFindAndPatchRecord(t *testing.T) {
	s, _ := newTestSession(t)

	r, ok := s.Find("2")
	require.True(t, ok)
	assert.Equal(t, "Sunita Deshmukh", r.NameEnglish)

	mobile := "9011223344"
	house := "14B"
	patched, ok := s.PatchRecord("2", &mobile, &house)
	require.True(t, ok)
	assert.Equal(t, "9011223344", patched.MobileNumber)
	assert.Equal(t, "14B", patched.HouseNumber)

	r, _ = s.Find("2")
	assert.Equal(t, "9011223344", r.MobileNumber)

	_, ok = s.PatchRecord("99", &mobile, nil)
	assert.False(t, ok)
}

func TestPatchRecordNilFieldsUntouched(t *testing.T) {
	s, _ := newTestSession(t)

	patched, ok := s.PatchRecord("1", nil, nil)
	require.True(t, ok)
	assert.Equal(t, "9090385555", patched.MobileNumber)
}

func TestStatsAndSuggest(t *testing.T) {
	s, _ := newTestSession(t)

	st := s.Stats()
	assert.Equal(t, 2, st.Males)
	assert.Equal(t, 1, st.Females)
	assert.Equal(t, 3, st.Total)

	sug := s.Suggest("ravi")
	require.Len(t, sug, 1)
	assert.Equal(t, "Ravi Kumar Patil", sug[0].Display)
}
