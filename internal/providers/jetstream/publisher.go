package jetstream

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/vault-indexer/internal/adapter"
	"github.com/feral-file/vault-indexer/internal/domain"
	"github.com/feral-file/vault-indexer/internal/logger"
	"github.com/feral-file/vault-indexer/internal/messaging"
)

const defaultSubjectPrefix = "subscriptions"

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	SubjectPrefix  string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc            adapter.NatsConn
	js            adapter.JetStream
	streamName    string
	subjectPrefix string
	json          adapter.JSON

	closeOnce sync.Once
	closeCh   chan struct{}
}

// NewPublisher creates a new NATS JetStream publisher
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	p := &publisher{
		streamName:    cfg.StreamName,
		subjectPrefix: cfg.SubjectPrefix,
		json:          jsonAdapter,
		closeCh:       make(chan struct{}),
	}
	if p.subjectPrefix == "" {
		p.subjectPrefix = defaultSubjectPrefix
	}

	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
			p.markClosed()
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}
	p.nc = nc
	p.js = js

	logger.Info("Connected to NATS", zap.String("url", nc.ConnectedUrl()), zap.String("stream", cfg.StreamName))

	return p, nil
}

// PublishSubscription announces a registered subscription on <prefix>.<kind>.
// The message id is <kind>:<address> so JetStream drops republished announcements.
func (p *publisher) PublishSubscription(ctx context.Context, sub *domain.SubscriptionRegistered) error {
	logger.DebugCtx(ctx, "Publishing subscription", zap.Any("subscription", sub))

	data, err := p.json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal subscription: %w", err)
	}

	opts := []jetstream.PublishOpt{jetstream.WithMsgID(msgID(sub))}
	if p.streamName != "" {
		opts = append(opts, jetstream.WithExpectStream(p.streamName))
	}

	ack, err := p.js.Publish(ctx, p.buildSubject(sub.PipelineKind), data, opts...)
	if err != nil {
		return fmt.Errorf("failed to publish subscription: %w", err)
	}

	if ack != nil && ack.Duplicate {
		logger.DebugCtx(ctx, "Subscription announcement already published", zap.String("msg_id", msgID(sub)))
	}

	return nil
}

// buildSubject constructs the NATS subject for a pipeline kind
func (p *publisher) buildSubject(kind domain.PipelineKind) string {
	// Format: {prefix}.{kind}, e.g. subscriptions.VaultInstance
	return fmt.Sprintf("%s.%s", p.subjectPrefix, kind)
}

func msgID(sub *domain.SubscriptionRegistered) string {
	return fmt.Sprintf("%s:%s", sub.PipelineKind, sub.Address)
}

func (p *publisher) markClosed() {
	p.closeOnce.Do(func() { close(p.closeCh) })
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
	p.markClosed()
}

// CloseChan returns a channel that is closed when the connection is closed
func (p *publisher) CloseChan() <-chan struct{} {
	return p.closeCh
}
