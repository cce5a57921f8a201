package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Synt4xB4ndit/sol-arb-bot/internal/control"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/signal"
)

func newTestServer(t *testing.T) (*Server, *control.RunState, *httptest.Server) {
	t.Helper()
	state := &control.RunState{}
	srv := New(zerolog.Nop(), state, ":0", "secret", true)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, state, ts
}

func do(t *testing.T, method, url, token string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(body)
}

func TestStatusIsOpen(t *testing.T) {
	_, state, ts := newTestServer(t)
	state.Start()

	resp, body := do(t, http.MethodGet, ts.URL+"/status", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got["running"] != true {
		t.Fatalf("expected running=true, got %v", got)
	}
	if got["simulation"] != true {
		t.Fatalf("expected simulation=true, got %v", got)
	}
}

func TestRootReportsOnline(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, body := do(t, http.MethodGet, ts.URL+"/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"status":"online"`) {
		t.Fatalf("unexpected root body: %s", body)
	}
}

func TestStartStopIdempotent(t *testing.T) {
	_, state, ts := newTestServer(t)

	resp1, body1 := do(t, http.MethodPost, ts.URL+"/start", "secret")
	resp2, body2 := do(t, http.MethodPost, ts.URL+"/start", "secret")
	if resp1.StatusCode != http.StatusOK || resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on both starts, got %d and %d", resp1.StatusCode, resp2.StatusCode)
	}
	if body1 != body2 {
		t.Fatalf("start must be idempotent: %q vs %q", body1, body2)
	}
	if !state.Running() {
		t.Fatalf("run flag must be true after start")
	}

	resp1, body1 = do(t, http.MethodPost, ts.URL+"/stop", "secret")
	resp2, body2 = do(t, http.MethodPost, ts.URL+"/stop", "secret")
	if resp1.StatusCode != http.StatusOK || resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on both stops")
	}
	if body1 != body2 {
		t.Fatalf("stop must be idempotent: %q vs %q", body1, body2)
	}
	if state.Running() {
		t.Fatalf("run flag must be false after stop")
	}
}

func TestAuthGate(t *testing.T) {
	_, state, ts := newTestServer(t)

	resp, _ := do(t, http.MethodPost, ts.URL+"/start", "wrong")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong credential, got %d", resp.StatusCode)
	}
	if state.Running() {
		t.Fatalf("wrong credential must not mutate the run flag")
	}

	resp, _ = do(t, http.MethodPost, ts.URL+"/start", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing credential, got %d", resp.StatusCode)
	}
	if state.Running() {
		t.Fatalf("missing credential must not mutate the run flag")
	}

	state.Start()
	resp, _ = do(t, http.MethodPost, ts.URL+"/stop", "wrong")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong credential on stop, got %d", resp.StatusCode)
	}
	if !state.Running() {
		t.Fatalf("wrong credential must leave the run flag at its prior value")
	}
}

func TestHubStreamsResults(t *testing.T) {
	srv, _, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for srv.Hub().ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	srv.Hub().Publish(signal.Result{Symbol: "AAA", ProfitUSD: 0.15})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read websocket message: %v", err)
	}
	var got signal.Result
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if got.Symbol != "AAA" || got.ProfitUSD != 0.15 {
		t.Fatalf("unexpected streamed result: %+v", got)
	}
}
