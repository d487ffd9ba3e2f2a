package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sasgp-api/internal/observability"
)

// Event names published after successful writes.
const (
	EventSolutionCreated = "solutions.created"
	EventSolutionUpdated = "solutions.updated"
	EventSolutionDeleted = "solutions.deleted"
	EventRecordCreated   = "records.created"
	EventReportDeleted   = "reports.deleted"
	EventStatusChanged   = "status.changed"
)

// EventPublisher broadcasts domain events. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, event string, data interface{})
}

type domainEvent struct {
	Source string      `json:"source"`
	Event  string      `json:"event"`
	Data   interface{} `json:"data"`
	SentAt time.Time   `json:"sent_at"`
}

type natsEventPublisher struct {
	conn    *nats.Conn
	subject string
	nodeID  string
	logger  zerolog.Logger
}

// NewEventPublisher returns a NATS-backed publisher, or a no-op one when conn is nil.
// Events go to "<subjectBase>.<event>".
func NewEventPublisher(conn *nats.Conn, subjectBase string, logger zerolog.Logger) EventPublisher {
	if conn == nil {
		return NopEventPublisher{}
	}

	subject := strings.Trim(strings.ReplaceAll(subjectBase, ":", "."), ".")
	if subject == "" {
		subject = "sasgp"
	}

	return &natsEventPublisher{
		conn:    conn,
		subject: subject,
		nodeID:  uuid.NewString(),
		logger:  logger.With().Str("component", "event_publisher").Logger(),
	}
}

func (p *natsEventPublisher) Publish(ctx context.Context, event string, data interface{}) {
	subject := p.subject + "." + event

	payload, err := json.Marshal(domainEvent{
		Source: p.nodeID,
		Event:  event,
		Data:   data,
		SentAt: time.Now().UTC(),
	})
	if err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to encode event")
		observability.EventsPublished().WithLabelValues(subject, "error").Inc()
		return
	}

	if err := p.conn.Publish(subject, payload); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
		observability.EventsPublished().WithLabelValues(subject, "error").Inc()
		return
	}

	observability.EventsPublished().WithLabelValues(subject, "ok").Inc()
}

// NopEventPublisher discards events.
type NopEventPublisher struct{}

// Publish implements EventPublisher.
func (NopEventPublisher) Publish(context.Context, string, interface{}) {}
