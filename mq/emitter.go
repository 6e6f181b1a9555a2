// Package mq publishes diagnostic events to Redis so degraded-mode conditions
// (generation fallback, day-count mismatch, unpersisted create) stay
// observable without changing any handler's response contract.
package mq

import (
	"context"
	"encoding/json"
	"time"

	"voyago/logger"
	"voyago/rdx"
)

const channel = "itinerary-diagnostics"

// Event names.
const (
	EventGenerationFallback = "generation_fallback"
	EventDayCountMismatch   = "daycount_mismatch"
	EventPersistDegraded    = "persist_degraded"
)

// Event is a single diagnostic message.
type Event struct {
	Name   string            `json:"name"`
	Fields map[string]string `json:"fields,omitempty"`
	At     time.Time         `json:"at"`
}

// Emitter publishes events. The interface exists so handlers can be tested
// with a recording fake.
type Emitter interface {
	Emit(ctx context.Context, name string, fields map[string]string)
}

// Redis publishes to the diagnostics channel; without a connection it only
// logs, which keeps the signal visible in development.
type Redis struct{}

func NewRedis() *Redis {
	return &Redis{}
}

func (e *Redis) Emit(ctx context.Context, name string, fields map[string]string) {
	logger.Log.Infow("diagnostic event", "event", name, "fields", fields)

	if !rdx.Available() {
		return
	}

	data, err := json.Marshal(Event{Name: name, Fields: fields, At: time.Now().UTC()})
	if err != nil {
		logger.Log.Errorw("marshal diagnostic event", "event", name, "err", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		logger.Log.Warnw("publish diagnostic event", "event", name, "err", err)
	}
}

// Nop discards every event.
type Nop struct{}

func (Nop) Emit(context.Context, string, map[string]string) {}
