package events

import (
	"context"
	"encoding/json"
	"time"

	"talentgigs/common/telemetry"
	"talentgigs/internal/config"
	"talentgigs/internal/errors"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("talentgigs/events")

const SearchAuditSubject = "jobs.search.audit"

// SearchAudit records one aggregated search for downstream consumers.
type SearchAudit struct {
	EventID       string    `json:"event_id"`
	Keywords      string    `json:"keywords"`
	Sources       []string  `json:"sources"`
	TotalCount    int       `json:"total_count"`
	InternalCount int       `json:"internal_count"`
	ExternalCount int       `json:"external_count"`
	DurationMS    int64     `json:"duration_ms"`
	WarningCount  int       `json:"warning_count"`
	Timestamp     time.Time `json:"timestamp"`
}

type Publisher interface {
	PublishSearchAudit(ctx context.Context, audit *SearchAudit) error
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewPublisher(logger *zap.Logger, config *config.Config) (Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(config.NATSConnTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(config.NATSURL, opts...)
	if err != nil {
		return nil, errors.Internal("connecting to NATS", err)
	}

	return &natsPublisher{
		conn:   conn,
		logger: logger,
	}, nil
}

func (p *natsPublisher) PublishSearchAudit(ctx context.Context, audit *SearchAudit) error {
	_, span := tracer.Start(ctx, "PublishSearchAudit")
	defer span.End()

	if audit.EventID == "" {
		audit.EventID = uuid.NewString()
	}

	data, err := json.Marshal(audit)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling search audit", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", SearchAuditSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(SearchAuditSubject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish search audit",
			zap.String("event_id", audit.EventID),
			zap.Error(err))
		return errors.Internal("publishing to NATS", err)
	}

	p.logger.Debug("published search audit",
		zap.String("event_id", audit.EventID),
		zap.String("subject", SearchAuditSubject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// NopPublisher drops every event. Used when auditing is disabled and in tests.
type NopPublisher struct{}

func (NopPublisher) PublishSearchAudit(context.Context, *SearchAudit) error { return nil }

func (NopPublisher) Close() {}
