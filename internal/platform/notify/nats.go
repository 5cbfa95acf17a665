package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSConfig configures the NATS signal publisher.
type NATSConfig struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultNATSConfig returns the publisher defaults.
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		SubjectPrefix: "minspirit.signals",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// Publisher is the subset of *nats.Conn the trigger needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSTrigger publishes each signal as JSON on <prefix>.<kind>.
type NATSTrigger struct {
	pub    Publisher
	conn   *nats.Conn
	prefix string
	logger *slog.Logger
}

// ConnectNATS dials the broker and returns a trigger that owns the connection.
func ConnectNATS(cfg NATSConfig, logger *slog.Logger) (*NATSTrigger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "nats_trigger"))

	opts := []nats.Option{
		nats.Name("minspirit-server"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Error("NATS disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", slog.String("url", nc.ConnectedUrl()))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	t := NewNATSTrigger(nc, cfg.SubjectPrefix, logger)
	t.conn = nc
	return t, nil
}

// NewNATSTrigger wraps an existing publisher.
func NewNATSTrigger(pub Publisher, prefix string, logger *slog.Logger) *NATSTrigger {
	if logger == nil {
		logger = slog.Default()
	}
	if prefix == "" {
		prefix = DefaultNATSConfig().SubjectPrefix
	}
	return &NATSTrigger{
		pub:    pub,
		prefix: prefix,
		logger: logger.With(slog.String("component", "nats_trigger")),
	}
}

// Subject returns the subject signals of kind are published on.
func (t *NATSTrigger) Subject(kind SignalKind) string {
	return fmt.Sprintf("%s.%s", t.prefix, kind)
}

// Fire implements Trigger.
func (t *NATSTrigger) Fire(ctx context.Context, signal Signal) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(signal)
	if err != nil {
		return fmt.Errorf("marshal signal: %w", err)
	}

	subject := t.Subject(signal.Kind)
	if err := t.pub.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	t.logger.Debug("signal published",
		slog.String("subject", subject),
		slog.String("device_id", signal.DeviceID))
	return nil
}

// Close drains the connection opened by ConnectNATS.
func (t *NATSTrigger) Close() error {
	if t.conn == nil {
		return nil
	}
	return t.conn.Drain()
}
