package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/ismaspace-backend/internal/data/repos/testutil"
	"github.com/yungbote/ismaspace-backend/internal/realtime"
	"github.com/yungbote/ismaspace-backend/internal/realtime/bus"
)

type failingBus struct{ bus.LocalBus }

func (b *failingBus) Publish(context.Context, realtime.SSEMessage) error {
	return errors.New("bus down")
}

type realtimeCount map[string]int

func (c realtimeCount) IncRealtime(event, transport string) { c[event+"/"+transport]++ }

func TestProgressNotifier_DeliversToUserChannel(t *testing.T) {
	hub := realtime.NewSSEHub(testutil.Logger(t))
	mine := hub.NewSSEClient(1)
	hub.AddChannel(mine, realtime.UserChannel(1))
	theirs := hub.NewSSEClient(2)
	hub.AddChannel(theirs, realtime.UserChannel(2))

	counts := realtimeCount{}
	n := NewProgressNotifier(&HubEmitter{Hub: hub, Metrics: counts})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.ProgressToggled(ctx, 1, 3, true)

	select {
	case msg := <-mine.Outbound:
		data, ok := msg.Data.(realtime.ProgressToggledData)
		if msg.Event != realtime.SSEEventProgressToggled || !ok || data.LessonID != 3 || !data.Completed {
			t.Fatalf("unexpected message: %+v", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("message not delivered")
	}
	select {
	case msg := <-theirs.Outbound:
		t.Fatalf("other user received %+v", msg)
	default:
	}
	if counts["ProgressToggled/hub"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestBusEmitter_ForwardsThroughBus(t *testing.T) {
	hub := realtime.NewSSEHub(testutil.Logger(t))
	client := hub.NewSSEClient(1)
	hub.AddChannel(client, realtime.UserChannel(1))

	b := bus.NewLocalBus()
	if err := b.StartForwarder(context.Background(), hub.Broadcast); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	counts := realtimeCount{}
	n := NewProgressNotifier(&BusEmitter{Bus: b, Log: testutil.Logger(t), Metrics: counts})
	n.ProgressToggled(context.Background(), 1, 2, false)

	select {
	case msg := <-client.Outbound:
		if data := msg.Data.(realtime.ProgressToggledData); data.LessonID != 2 || data.Completed {
			t.Fatalf("unexpected data: %+v", data)
		}
	case <-time.After(time.Second):
		t.Fatalf("message not forwarded")
	}
	if counts["ProgressToggled/bus"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	failing := NewProgressNotifier(&BusEmitter{Bus: &failingBus{}, Log: testutil.Logger(t), Metrics: counts})
	failing.ProgressToggled(context.Background(), 1, 2, true)
	if counts["ProgressToggled/bus"] != 1 {
		t.Fatalf("failed publish should not be counted: %v", counts)
	}
}
