package events

import (
	"sync"

	"go.uber.org/zap"
)

// Opt for configuring Reporter.
type Opt func(*Reporter)

// WithLogger sets logger for Reporter.
func WithLogger(logger *zap.Logger) Opt {
	return func(r *Reporter) {
		r.logger = logger
	}
}

// NewReporter creates reporter without subscribers.
func NewReporter(opts ...Opt) *Reporter {
	r := &Reporter{
		logger: zap.NewNop(),
		subs:   map[*subscription]struct{}{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type subscription struct {
	ch chan Event
}

// Reporter fans out events to subscribers. Publish never blocks, an event is
// dropped for a subscriber whose buffer is full.
type Reporter struct {
	logger *zap.Logger

	mu   sync.Mutex
	subs map[*subscription]struct{}
}

// Publish the event to every subscriber.
func (r *Reporter) Publish(ev Event) {
	r.logger.Debug("event", zap.String("name", ev.Name()), zap.Inline(ev))
	published.WithLabelValues(ev.Name()).Inc()
	r.mu.Lock()
	defer r.mu.Unlock()
	for sub := range r.subs {
		select {
		case sub.ch <- ev:
		default:
			dropped.WithLabelValues(ev.Name()).Inc()
			r.logger.Debug("subscriber is full, event dropped", zap.String("name", ev.Name()))
		}
	}
}

// Subscribe returns a channel with a buffer of the given size and a function to close it.
func (r *Reporter) Subscribe(buf int) (<-chan Event, func()) {
	sub := &subscription{ch: make(chan Event, buf)}
	r.mu.Lock()
	r.subs[sub] = struct{}{}
	r.mu.Unlock()
	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, sub)
			r.mu.Unlock()
			close(sub.ch)
		})
	}
}

// Subscribers returns number of active subscriptions.
func (r *Reporter) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
