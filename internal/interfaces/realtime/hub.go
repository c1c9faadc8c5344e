// Package realtime fans confirmed draft events out to websocket subscribers and
// to an optional NATS subject, and feeds NATS adjustments back into sessions.
package realtime

import (
	"context"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/interfaces/view"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
)

const (
	defaultPoolSize  = 16
	defaultQueueSize = 32
)

// Frame is one encoded event.
type Frame struct {
	Type string
	Seq  uint64
	Data []byte
}

// Terminal reports whether no further frames follow for the session.
func (f Frame) Terminal() bool {
	return f.Type == draft.EventReset
}

// Sink receives every encoded frame after local subscribers are scheduled.
type Sink interface {
	PublishFrame(ctx context.Context, sessionID string, frame Frame) error
}

type HubConfig struct {
	PoolSize  int
	QueueSize int
	Logger    *logging.Logger
	Sinks     []Sink
}

// Hub implements draft.Publisher.
type Hub struct {
	pool      *ants.Pool
	queueSize int
	logger    *logging.Logger
	sinks     []Sink

	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
	seqs map[string]uint64
}

func NewHub(cfg HubConfig) (*Hub, error) {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = defaultPoolSize
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	pool, err := ants.NewPool(cfg.PoolSize)
	if err != nil {
		return nil, errors.Wrap(err, "create realtime worker pool")
	}

	return &Hub{
		pool:      pool,
		queueSize: cfg.QueueSize,
		logger:    cfg.Logger,
		sinks:     cfg.Sinks,
		subs:      make(map[string]map[*Subscription]struct{}),
		seqs:      make(map[string]uint64),
	}, nil
}

// AddSink registers a sink. It is meant to be called during wiring only.
func (h *Hub) AddSink(sink Sink) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sinks = append(h.sinks, sink)
}

// Subscribe returns a subscription that receives frames published after the call.
func (h *Hub) Subscribe(sessionID string) *Subscription {
	sub := &Subscription{
		hub:       h,
		sessionID: sessionID,
		ch:        make(chan Frame, h.queueSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[*Subscription]struct{})
	}
	h.subs[sessionID][sub] = struct{}{}
	return sub
}

func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sessionID])
}

func (h *Hub) Publish(ctx context.Context, sessionID string, event draft.Event) error {
	h.mu.Lock()
	h.seqs[sessionID]++
	seq := h.seqs[sessionID]
	if event.Type == draft.EventReset {
		delete(h.seqs, sessionID)
	}
	targets := make([]*Subscription, 0, len(h.subs[sessionID]))
	for sub := range h.subs[sessionID] {
		targets = append(targets, sub)
	}
	sinks := h.sinks
	h.mu.Unlock()

	data, err := encode(view.NewEvent(event, seq))
	if err != nil {
		return errors.Wrapf(err, "encode draft event session=%s", sessionID)
	}
	frame := Frame{Type: event.Type, Seq: seq, Data: data}

	for _, sub := range targets {
		if err := h.pool.Submit(func() { sub.offer(frame) }); err != nil {
			h.logger.DebugContext(ctx, "realtime pool unavailable, delivering inline", "session_id", sessionID, "error", err)
			sub.offer(frame)
		}
	}

	var errs error
	for _, sink := range sinks {
		if err := sink.PublishFrame(ctx, sessionID, frame); err != nil {
			errs = errors.CombineErrors(errs, err)
		}
	}
	return errs
}

// Close ends every subscription and releases the worker pool.
func (h *Hub) Close() {
	h.mu.Lock()
	all := h.subs
	h.subs = make(map[string]map[*Subscription]struct{})
	h.mu.Unlock()

	for _, subs := range all {
		for sub := range subs {
			sub.closeChannel()
		}
	}
	h.pool.Release()
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subs[sub.sessionID]
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subs, sub.sessionID)
	}
}

func encode(payload view.Event) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}
