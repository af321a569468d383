package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aum-visual/aumgfx/lib/config"
	"github.com/aum-visual/aumgfx/lib/output"
	"github.com/aum-visual/aumgfx/lib/stats"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutput struct {
	mu        sync.Mutex
	state     output.State
	result    output.Result
	hasRun    bool
	windowed  bool
	closes    int
	listeners []output.StateListener
}

func (f *fakeOutput) State() output.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeOutput) LastResult() (output.Result, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result, f.hasRun
}

func (f *fakeOutput) RequestClose() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.windowed {
		return false
	}
	f.closes++
	return true
}

func (f *fakeOutput) OnStateChange(l output.StateListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, l)
}

func (f *fakeOutput) setState(s output.State) {
	f.mu.Lock()
	f.state = s
	listeners := append([]output.StateListener(nil), f.listeners...)
	f.mu.Unlock()
	for _, l := range listeners {
		l(nil, s)
	}
}

func newTestApi(t *testing.T, o *fakeOutput) (*Api, *stats.Stats) {
	t.Helper()
	s := stats.New()
	return New(&config.ApiCfg{Bind: "127.0.0.1:0"}, o, s), s
}

func do(t *testing.T, a *Api, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestStats(t *testing.T) {
	a, s := newTestApi(t, &fakeOutput{})
	s.Update(0)
	s.Update(0)

	rec := do(t, a, http.MethodGet, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var report stats.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, uint64(2), report.Frames)
}

func TestState(t *testing.T) {
	o := &fakeOutput{state: output.Terminated, result: output.ResultBootstrapFailed, hasRun: true}
	a, _ := newTestApi(t, o)

	rec := do(t, a, http.MethodGet, "/api/state")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StateResp
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, StateResp{State: "TERMINATED", Result: "bootstrap_failed"}, resp)
}

func TestKill(t *testing.T) {
	o := &fakeOutput{}
	a, _ := newTestApi(t, o)

	rec := do(t, a, http.MethodPost, "/api/kill")
	assert.Equal(t, http.StatusConflict, rec.Code)

	o.windowed = true
	rec = do(t, a, http.MethodPost, "/api/kill")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, o.closes)

	rec = do(t, a, http.MethodGet, "/api/kill")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, 1, o.closes)
}

func TestMetricsAndDocs(t *testing.T) {
	a, _ := newTestApi(t, &fakeOutput{})

	rec := do(t, a, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, a, http.MethodGet, "/api/docs/doc.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/kill")
}

func TestProfilerOnlyWhenEnabled(t *testing.T) {
	a, _ := newTestApi(t, &fakeOutput{})
	rec := do(t, a, http.MethodGet, "/prof")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// dialState connects a websocket client and consumes the initial state.
func dialState(t *testing.T, o *fakeOutput) *websocket.Conn {
	t.Helper()
	a, s := newTestApi(t, o)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var event EventState
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, EventState{Event: "state", State: "BOOTSTRAPPING"}, event)
	require.Eventually(t, func() bool { return s.Snapshot().WsClients == 1 }, time.Second, 10*time.Millisecond)
	return conn
}

// readStates skips stats pushes and returns the next n state names.
func readStates(t *testing.T, conn *websocket.Conn, n int) []string {
	t.Helper()
	var states []string
	for len(states) < n {
		var msg map[string]any
		require.NoError(t, conn.ReadJSON(&msg))
		if msg["event"] == "state" {
			states = append(states, msg["state"].(string))
		}
	}
	return states
}

func TestWebsocketPushesStateChanges(t *testing.T) {
	o := &fakeOutput{state: output.Bootstrapping}
	conn := dialState(t, o)

	o.setState(output.Running)
	assert.Equal(t, []string{"RUNNING"}, readStates(t, conn, 1))
}

func TestWebsocketKeepsStateOrder(t *testing.T) {
	for range 20 {
		o := &fakeOutput{state: output.Bootstrapping}
		conn := dialState(t, o)

		o.setState(output.Running)
		o.setState(output.ShuttingDown)
		o.setState(output.Terminated)

		assert.Equal(t, []string{"RUNNING", "SHUTTING_DOWN", "TERMINATED"}, readStates(t, conn, 3))
	}
}
