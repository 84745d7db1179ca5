package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
	"github.com/yungbote/ismaspace-backend/internal/realtime/bus"
)

type Clients struct {
	// Redis is nil when REDIS_ADDR is unset.
	Redis *bus.RedisBus
	Bus   bus.Bus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		return Clients{Bus: bus.NewLocalBus()}, nil
	}
	rb, err := bus.NewRedisBus(log, cfg.Redis)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis SSE bus: %w", err)
	}
	return Clients{Redis: rb, Bus: rb}, nil
}

func (c Clients) Close() error {
	if c.Bus == nil {
		return nil
	}
	return c.Bus.Close()
}
