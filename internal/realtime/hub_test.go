package realtime

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func recvMessage(t *testing.T, ch <-chan SSEMessage, timeout time.Duration) SSEMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for SSE message")
	}
	return SSEMessage{}
}

func toggled(userID, lessonID uint, completed bool) SSEMessage {
	return SSEMessage{
		Channel: UserChannel(userID),
		Event:   SSEEventProgressToggled,
		Data:    ProgressToggledData{UserID: userID, LessonID: lessonID, Completed: completed},
	}
}

func TestSSEHubOrderingAndReconnect(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))

	clientA := hub.NewSSEClient(1)
	hub.AddChannel(clientA, UserChannel(1))
	hub.Broadcast(toggled(1, 1, true))
	hub.Broadcast(toggled(1, 1, false))

	first := recvMessage(t, clientA.Outbound, time.Second)
	second := recvMessage(t, clientA.Outbound, time.Second)
	if first.Data.(ProgressToggledData).Completed != true || second.Data.(ProgressToggledData).Completed != false {
		t.Fatalf("messages out of order: %+v then %+v", first, second)
	}

	hub.CloseClient(clientA)
	hub.CloseClient(clientA)
	if _, ok := <-clientA.Outbound; ok {
		t.Fatalf("clientA outbound should be closed after disconnect")
	}
	if n := hub.Subscribers(UserChannel(1)); n != 0 {
		t.Fatalf("expected no subscribers after close, got %d", n)
	}

	clientB := hub.NewSSEClient(1)
	hub.AddChannel(clientB, UserChannel(1))
	hub.Broadcast(toggled(1, 2, true))
	if got := recvMessage(t, clientB.Outbound, time.Second); got.Event != SSEEventProgressToggled {
		t.Fatalf("reconnect event: got=%s", got.Event)
	}
}

func TestSSEHubChannelsAreIsolated(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	one := hub.NewSSEClient(1)
	two := hub.NewSSEClient(2)
	hub.AddChannel(one, UserChannel(1))
	hub.AddChannel(two, UserChannel(2))

	hub.Broadcast(toggled(2, 3, true))
	recvMessage(t, two.Outbound, time.Second)
	select {
	case msg := <-one.Outbound:
		t.Fatalf("user 1 received user 2 message: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSSEHubDropsWhenBufferFull(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	c := hub.NewSSEClient(1)
	hub.AddChannel(c, UserChannel(1))
	for i := 0; i < outboundBuffer+5; i++ {
		hub.Broadcast(toggled(1, 1, i%2 == 0))
	}
	if len(c.Outbound) != outboundBuffer {
		t.Fatalf("expected full buffer of %d, got %d", outboundBuffer, len(c.Outbound))
	}
}

type countingGauge struct{ n int }

func (g *countingGauge) SSEClientsInc() { g.n++ }
func (g *countingGauge) SSEClientsDec() { g.n-- }

func TestSSEHubServeHTTPStreamsEvents(t *testing.T) {
	gauge := &countingGauge{}
	hub := NewSSEHub(mustTestLogger(t)).WithClientGauge(gauge)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := hub.NewSSEClient(7)
		hub.AddChannel(client, UserChannel(7))
		defer hub.CloseClient(client)
		hub.ServeHTTP(w, r, client)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type: %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	if line, _ := reader.ReadString('\n'); !strings.HasPrefix(line, ": connected") {
		t.Fatalf("expected connected comment, got %q", line)
	}
	for hub.Subscribers(UserChannel(7)) == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	hub.Broadcast(toggled(7, 4, true))

	var eventLine, dataLine string
	for dataLine == "" {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		switch {
		case strings.HasPrefix(line, "event: "):
			eventLine = strings.TrimSpace(strings.TrimPrefix(line, "event: "))
		case strings.HasPrefix(line, "data: "):
			dataLine = strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}
	if eventLine != string(SSEEventProgressToggled) {
		t.Fatalf("event: got %q", eventLine)
	}
	var msg struct {
		Channel string              `json:"channel"`
		Data    ProgressToggledData `json:"data"`
	}
	if err := json.Unmarshal([]byte(dataLine), &msg); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if msg.Channel != "user:7" || msg.Data.LessonID != 4 || !msg.Data.Completed {
		t.Fatalf("unexpected payload: %+v", msg)
	}
}
