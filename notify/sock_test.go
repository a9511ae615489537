package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"verdia/globals"
	"verdia/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T) string {
	t.Helper()
	claims := &middleware.Claims{
		Username: "tester",
		UserID:   "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tok
}

func newWSServer(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	router := httprouter.New()
	router.GET("/ws/events", ServeWS(hub))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events"
}

func TestServeWSRejectsMissingToken(t *testing.T) {
	_, url := newWSServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		conn.Close()
		t.Fatal("expected handshake to fail without a token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 handshake response, got %v", resp)
	}
}

func TestServeWSRejectsBadToken(t *testing.T) {
	_, url := newWSServer(t)

	header := http.Header{"Authorization": {"Bearer not-a-token"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		conn.Close()
		t.Fatal("expected handshake to fail with a bad token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 handshake response, got %v", resp)
	}
}

func TestServeWSStreamsEventsToAuthedClient(t *testing.T) {
	hub, url := newWSServer(t)

	// query-parameter token, the path browsers use
	conn, _, err := websocket.DefaultDialer.Dial(url+"?token="+signToken(t), nil)
	if err != nil {
		t.Fatalf("expected handshake to succeed: %v", err)
	}
	defer conn.Close()

	// let the server goroutine register the client with the hub
	time.Sleep(100 * time.Millisecond)

	data := []byte(`{"name":"cart-added"}`)
	hub.Broadcast(data)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, got, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("timeout waiting for event: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("expected %s, got %s", data, got)
	}
}
