package services

import (
	"context"

	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
	"github.com/yungbote/ismaspace-backend/internal/realtime"
	"github.com/yungbote/ismaspace-backend/internal/realtime/bus"
)

type SSEEmitter interface {
	Emit(ctx context.Context, msg realtime.SSEMessage)
}

// RealtimeCounter counts emitted messages per transport.
type RealtimeCounter interface {
	IncRealtime(event, transport string)
}

// HubEmitter delivers to clients connected to this process.
type HubEmitter struct {
	Hub     *realtime.SSEHub
	Metrics RealtimeCounter
}

func (e *HubEmitter) Emit(_ context.Context, msg realtime.SSEMessage) {
	if e == nil || e.Hub == nil {
		return
	}
	e.Hub.Broadcast(msg)
	if e.Metrics != nil {
		e.Metrics.IncRealtime(string(msg.Event), "hub")
	}
}

// BusEmitter publishes to the bus; each instance's forwarder feeds its hub.
type BusEmitter struct {
	Bus     bus.Bus
	Log     *logger.Logger
	Metrics RealtimeCounter
}

func (e *BusEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	if e == nil || e.Bus == nil {
		return
	}
	if err := e.Bus.Publish(ctx, msg); err != nil {
		if e.Log != nil {
			e.Log.Warn("realtime publish failed", "error", err, "event", msg.Event, "channel", msg.Channel)
		}
		return
	}
	if e.Metrics != nil {
		e.Metrics.IncRealtime(string(msg.Event), "bus")
	}
}
