package websocket

import (
	"context"

	"github.com/rs/zerolog"
)

// AuditLogger writes every published event to the structured log
type AuditLogger struct {
	hub    *Hub
	events chan *Event
	logger zerolog.Logger
}

// NewAuditLogger creates an AuditLogger for hub
func NewAuditLogger(hub *Hub, logger zerolog.Logger) *AuditLogger {
	return &AuditLogger{
		hub:    hub,
		events: make(chan *Event, 64),
		logger: logger.With().Str("component", "audit").Logger(),
	}
}

// Start subscribes to the hub and logs events until ctx is done
func (a *AuditLogger) Start(ctx context.Context) {
	a.hub.AddListener(a.events)
	go func() {
		defer a.hub.RemoveListener(a.events)
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-a.events:
				a.logger.Info().
					Str("type", e.Type).
					Int64("applicationID", e.ApplicationID).
					Str("status", e.Status).
					Time("at", e.Timestamp).
					Msg("Application event")
			}
		}
	}()
}
