package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"robodrive/command"
	"robodrive/input"
)

func newTestServer(t *testing.T, webDir string) (*Robot, *fakeMotor, *httptest.Server) {
	t.Helper()
	m := &fakeMotor{}
	r := NewRobot(m, nil)
	hub := NewHub(r)
	srv := httptest.NewServer(NewMux(r, hub, webDir, zap.NewNop().Sugar()))
	t.Cleanup(srv.Close)
	return r, m, srv
}

func TestHandleMove(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"forward", http.MethodPost, `{"direction":"forward"}`, http.StatusOK},
		{"extra fields", http.MethodPost, `{"direction":"stop","seq":3}`, http.StatusOK},
		{"unknown token", http.MethodPost, `{"direction":"jump"}`, http.StatusBadRequest},
		{"missing field", http.MethodPost, `{}`, http.StatusBadRequest},
		{"not a string", http.MethodPost, `{"direction":1}`, http.StatusBadRequest},
		{"malformed", http.MethodPost, `{"direction":`, http.StatusBadRequest},
		{"get", http.MethodGet, "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, srv := newTestServer(t, "")
			req, _ := http.NewRequest(tt.method, srv.URL+"/move", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := srv.Client().Do(req)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestDispatcherEndToEnd(t *testing.T) {
	r, m, srv := newTestServer(t, "")
	sender := input.NewHTTPSender(srv.URL, srv.Client())
	d := input.NewDispatcher(sender, nil)

	d.HandleKey(input.KeyArrowUp)
	sender.Wait()
	if st := r.State(); st.Left != DefaultMaxSpeed || st.Right != DefaultMaxSpeed {
		t.Errorf("after ArrowUp state = %+v", st)
	}

	d.HandleKey("a")
	d.HandleKey(input.KeySpace)
	sender.Wait()
	if !m.last().standby {
		t.Errorf("after space last motor call = %+v", m.last())
	}
	if got := r.Metrics().Accepted; got != 2 {
		t.Errorf("accepted = %d, want 2", got)
	}
}

func TestAdminConfig(t *testing.T) {
	r, _, srv := newTestServer(t, "")

	resp, err := srv.Client().Post(srv.URL+"/admin/config", "application/json",
		strings.NewReader(`{"maxSpeed":60,"shutdownTimeoutMs":500}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST status = %d", resp.StatusCode)
	}
	if r.MaxSpeed() != 60 || r.ShutdownTimeout() != 500*time.Millisecond {
		t.Errorf("config not applied: speed=%d timeout=%v", r.MaxSpeed(), r.ShutdownTimeout())
	}

	resp, err = srv.Client().Get(srv.URL + "/admin/config")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var cur struct {
		MaxSpeed          int   `json:"maxSpeed"`
		ShutdownTimeoutMs int64 `json:"shutdownTimeoutMs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&cur); err != nil {
		t.Fatal(err)
	}
	if cur.MaxSpeed != 60 || cur.ShutdownTimeoutMs != 500 {
		t.Errorf("GET config = %+v", cur)
	}

	resp, err = srv.Client().Post(srv.URL+"/admin/config", "application/json", strings.NewReader(`{"maxSpeed":-1}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid speed status = %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, _, srv := newTestServer(t, "")
	for _, body := range []string{`{"direction":"left"}`, `{"direction":"left"}`, `{"direction":"nope"}`} {
		resp, err := srv.Client().Post(srv.URL+"/move", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var got struct {
		Metrics struct {
			Accepted   int64            `json:"accepted"`
			Rejected   int64            `json:"rejected"`
			Directions map[string]int64 `json:"directions"`
		} `json:"metrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Metrics.Accepted != 2 || got.Metrics.Rejected != 1 || got.Metrics.Directions["left"] != 2 {
		t.Errorf("metrics = %+v", got.Metrics)
	}
}

func TestStaticAndHealth(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>drive</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, srv := newTestServer(t, dir)

	for path, want := range map[string]string{"/healthz": "ok", "/": "<h1>drive</h1>"} {
		resp, err := srv.Client().Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatal(err)
		}
		if string(body) != want {
			t.Errorf("GET %s = %q, want %q", path, body, want)
		}
	}
}

func TestWebSocketControlAndState(t *testing.T) {
	_, _, srv := newTestServer(t, "")
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg struct {
		Type    string `json:"type"`
		Left    int    `json:"left"`
		Right   int    `json:"right"`
		Standby bool   `json:"standby"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read initial state: %v", err)
	}
	if msg.Type != "state" || !msg.Standby {
		t.Errorf("initial state = %+v", msg)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"direction":"backward"}`)); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read state: %v", err)
	}
	if msg.Left != -DefaultMaxSpeed || msg.Right != -DefaultMaxSpeed || msg.Standby {
		t.Errorf("state after backward = %+v", msg)
	}
}

func TestMovePathMatchesCommand(t *testing.T) {
	if command.MovePath != "/move" {
		t.Fatalf("MovePath = %q", command.MovePath)
	}
}

func TestNoStaticDirServesNotFound(t *testing.T) {
	_, _, srv := newTestServer(t, "")
	resp, err := srv.Client().Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET / status = %d, want 404", resp.StatusCode)
	}
}
