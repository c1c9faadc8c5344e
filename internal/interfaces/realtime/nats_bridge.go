package realtime

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/nats-io/nats.go"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/interfaces/view"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
)

// Deliverer routes a push update to the session that owns it.
type Deliverer interface {
	Deliver(update draft.RemoteUpdate) bool
}

type NATSConfig struct {
	URL           string
	Name          string
	MaxReconnects int
	ReconnectWait time.Duration
}

// ConnectNATS dials the server with reconnect logging.
func ConnectNATS(cfg NATSConfig, logger *logging.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = 2 * time.Second
	}
	if cfg.MaxReconnects == 0 {
		cfg.MaxReconnects = -1
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			subject := ""
			if sub != nil {
				subject = sub.Subject
			}
			logger.Error("nats async error", "subject", subject, "error", err)
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "connect nats url=%s", cfg.URL)
	}
	return conn, nil
}

// NATSBridge publishes frames on <prefix>.<session>.events and reads
// adjustments from <prefix>.<session>.adjust.
type NATSBridge struct {
	conn   *nats.Conn
	prefix string
	logger *logging.Logger
	sub    *nats.Subscription
}

func NewNATSBridge(conn *nats.Conn, prefix string, logger *logging.Logger) *NATSBridge {
	if logger == nil {
		logger = logging.Default()
	}
	return &NATSBridge{
		conn:   conn,
		prefix: strings.Trim(prefix, "."),
		logger: logger,
	}
}

func (b *NATSBridge) EventsSubject(sessionID string) string {
	return b.prefix + "." + sessionID + ".events"
}

func (b *NATSBridge) adjustSubject() string {
	return b.prefix + ".*.adjust"
}

func (b *NATSBridge) PublishFrame(_ context.Context, sessionID string, frame Frame) error {
	if err := b.conn.Publish(b.EventsSubject(sessionID), frame.Data); err != nil {
		return errors.Wrapf(err, "publish nats event session=%s", sessionID)
	}
	return nil
}

// Listen subscribes to adjustments until Close.
func (b *NATSBridge) Listen(target Deliverer) error {
	sub, err := b.conn.Subscribe(b.adjustSubject(), func(msg *nats.Msg) {
		b.handleAdjustment(target, msg)
	})
	if err != nil {
		return errors.Wrapf(err, "subscribe nats subject=%s", b.adjustSubject())
	}
	b.sub = sub
	b.logger.Info("nats adjustment listener started", "subject", b.adjustSubject())
	return nil
}

func (b *NATSBridge) handleAdjustment(target Deliverer, msg *nats.Msg) {
	var adj view.Adjustment
	if err := sonic.Unmarshal(msg.Data, &adj); err != nil {
		b.logger.Warn("discard malformed draft adjustment", "subject", msg.Subject, "error", err)
		return
	}
	if strings.TrimSpace(adj.SessionID) == "" {
		adj.SessionID = b.sessionFromSubject(msg.Subject)
	}

	update := adj.RemoteUpdate()
	if update.SessionID == "" {
		b.logger.Warn("discard draft adjustment without session", "subject", msg.Subject)
		return
	}
	if !target.Deliver(update) {
		b.logger.Debug("draft adjustment not delivered", "session_id", update.SessionID)
	}
}

func (b *NATSBridge) sessionFromSubject(subject string) string {
	rest, ok := strings.CutPrefix(subject, b.prefix+".")
	if !ok {
		return ""
	}
	id, ok := strings.CutSuffix(rest, ".adjust")
	if !ok || strings.Contains(id, ".") {
		return ""
	}
	return id
}

// Close stops listening and drains buffered publishes.
func (b *NATSBridge) Close() error {
	if b.sub != nil {
		if err := b.sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			return errors.Wrap(err, "unsubscribe nats adjustments")
		}
	}
	if err := b.conn.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return errors.Wrap(err, "drain nats connection")
	}
	return nil
}
