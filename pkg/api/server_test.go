package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStatus struct {
	status Status
	thumb  []byte
}

func (s *stubStatus) Status() Status    { return s.status }
func (s *stubStatus) Thumbnail() []byte { return s.thumb }

func newTestServer(t *testing.T, st *stubStatus) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(st)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	return ws
}

func readMessage(t *testing.T, ws *websocket.Conn) Message {
	t.Helper()
	var msg Message
	require.NoError(t, ws.ReadJSON(&msg))
	return msg
}

// greet consumes the hello, state and accent messages sent on connect.
func greet(t *testing.T, ws *websocket.Conn) []Message {
	t.Helper()
	return []Message{readMessage(t, ws), readMessage(t, ws), readMessage(t, ws)}
}

func TestHealthCheck(t *testing.T) {
	s := NewServer(&stubStatus{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "running")
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatus(t *testing.T) {
	st := &stubStatus{status: Status{State: "playing", Video: "/v/sea.mp4", Accent: "#4a8fe3"}}
	s := NewServer(st)

	t.Run("Get", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var got Status
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, st.status, got)
	})

	t.Run("Preflight", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/status", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("Post not allowed", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/status", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}

func TestThumbnail(t *testing.T) {
	st := &stubStatus{}
	s := NewServer(st)

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/thumbnail", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	st.thumb = []byte("\x89PNG")
	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/thumbnail", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, st.thumb, rr.Body.Bytes())
}

func TestWebSocketGreeting(t *testing.T) {
	_, ts := newTestServer(t, &stubStatus{status: Status{State: "paused", Accent: "#ff0000"}})
	ws := dial(t, ts)

	msgs := greet(t, ws)
	assert.Equal(t, "hello", msgs[0].Type)
	_, err := uuid.Parse(msgs[0].ClientID)
	assert.NoError(t, err)
	assert.Equal(t, Message{Type: "state", State: "paused"}, msgs[1])
	assert.Equal(t, Message{Type: "accent", Color: "#ff0000"}, msgs[2])
}

func TestWebSocketClientIDsAreUnique(t *testing.T) {
	_, ts := newTestServer(t, &stubStatus{})
	first := greet(t, dial(t, ts))[0].ClientID
	second := greet(t, dial(t, ts))[0].ClientID
	assert.NotEqual(t, first, second)
}

func TestWebSocketPingPong(t *testing.T) {
	_, ts := newTestServer(t, &stubStatus{})
	ws := dial(t, ts)
	hello := greet(t, ws)[0]

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)))
	pong := readMessage(t, ws)
	assert.Equal(t, "pong", pong.Type)
	assert.Equal(t, hello.ClientID, pong.ClientID)
}

func TestBroadcast(t *testing.T) {
	s, ts := newTestServer(t, &stubStatus{})
	ws := dial(t, ts)
	greet(t, ws)

	// The client is registered once the greeting has been written.
	require.Eventually(t, func() bool { return s.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	s.BroadcastAccent("#336699")
	s.BroadcastState("stopped")

	assert.Equal(t, Message{Type: "accent", Color: "#336699"}, readMessage(t, ws))
	assert.Equal(t, Message{Type: "state", State: "stopped"}, readMessage(t, ws))
}

func TestClientRemovedOnDisconnect(t *testing.T) {
	s, ts := newTestServer(t, &stubStatus{})
	ws := dial(t, ts)
	greet(t, ws)
	require.Eventually(t, func() bool { return s.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	ws.Close()
	assert.Eventually(t, func() bool { return s.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestStopWithoutStart(t *testing.T) {
	s := NewServer(&stubStatus{})
	assert.NoError(t, s.Stop(context.Background()))
}

func TestStopBeforeServe(t *testing.T) {
	s := NewServerAt("127.0.0.1:0", &stubStatus{})
	require.NoError(t, s.Listen())
	addr := s.Addr()

	require.NoError(t, s.Stop(context.Background()))
	assert.NoError(t, s.Serve(), "Serve after Stop returns immediately")

	_, err := net.DialTimeout("tcp", addr, time.Second)
	assert.Error(t, err, "address must be released")
}

func TestListenServeStop(t *testing.T) {
	s := NewServerAt("127.0.0.1:0", &stubStatus{status: Status{State: "playing"}})
	require.NoError(t, s.Listen())
	require.NoError(t, s.Listen(), "second Listen is a no-op")

	served := make(chan error, 1)
	go func() { served <- s.Serve() }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + s.Addr() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, s.Stop(context.Background()))
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Stop")
	}
}

func TestListenAddressInUse(t *testing.T) {
	first := NewServerAt("127.0.0.1:0", &stubStatus{})
	require.NoError(t, first.Listen())
	t.Cleanup(func() { first.Stop(context.Background()) })

	second := NewServerAt(first.Addr(), &stubStatus{})
	assert.Error(t, second.Listen())
}
