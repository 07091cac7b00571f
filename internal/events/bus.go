// Package events is an in-process publish/subscribe bus used to tell live
// views about state changes they did not initiate.
package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrBusClosed is returned by Subscribe after Close.
var ErrBusClosed = errors.New("event bus closed")

type Topic string

const (
	// WeatherUpdated carries a weather.Report.
	WeatherUpdated Topic = "weather.updated"
	// AnalysisCompleted carries a store.HistoryEntry.
	AnalysisCompleted Topic = "analysis.completed"
	// HistoryChanged fires on history deletes and clears. No payload.
	HistoryChanged Topic = "history.changed"
	// GardenChanged fires when garden entries are added or removed. No payload.
	GardenChanged Topic = "garden.changed"
)

type Event struct {
	Topic   Topic
	Payload any
	At      time.Time
}

// Stats are cumulative counters since the bus was created.
type Stats struct {
	Published uint64
	Delivered uint64
	Dropped   uint64
}

// Bus fans events out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the event.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool

	published atomic.Uint64
	delivered atomic.Uint64
	dropped   atomic.Uint64

	logger *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subs:   make(map[*Subscription]struct{}),
		logger: logger,
	}
}

// Subscription receives events for a set of topics on C.
type Subscription struct {
	bus    *Bus
	topics map[Topic]bool
	ch     chan Event
	closed bool
}

// C is closed when the subscription or the bus is closed.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

func (s *Subscription) wants(t Topic) bool {
	return len(s.topics) == 0 || s.topics[t]
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	s.bus.remove(s)
}

// Subscribe registers for topics. No topics means every topic. buffer is the
// channel capacity and is at least 1.
func (b *Bus) Subscribe(buffer int, topics ...Topic) (*Subscription, error) {
	if buffer < 1 {
		buffer = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBusClosed
	}

	s := &Subscription{
		bus:    b,
		topics: make(map[Topic]bool, len(topics)),
		ch:     make(chan Event, buffer),
	}
	for _, t := range topics {
		s.topics[t] = true
	}
	b.subs[s] = struct{}{}

	b.logger.Debug("subscribed", "topics", topics, "buffer", buffer)
	return s, nil
}

// remove must be called with b.mu held.
func (b *Bus) remove(s *Subscription) {
	if s.closed {
		return
	}
	s.closed = true
	delete(b.subs, s)
	close(s.ch)
}

// Publish delivers an event to every interested subscriber without
// blocking and returns how many received it.
func (b *Bus) Publish(topic Topic, payload any) int {
	if b == nil {
		return 0
	}
	ev := Event{Topic: topic, Payload: payload, At: time.Now()}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return 0
	}
	b.published.Add(1)

	n := 0
	for s := range b.subs {
		if !s.wants(topic) {
			continue
		}
		select {
		case s.ch <- ev:
			n++
			b.delivered.Add(1)
		default:
			b.dropped.Add(1)
			b.logger.Debug("event dropped due to full buffer", "topic", topic)
		}
	}
	return n
}

// Close closes every subscription. Later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for s := range b.subs {
		b.remove(s)
	}
	st := b.Stats()
	b.logger.Debug("event bus closed",
		"published", st.Published,
		"delivered", st.Delivered,
		"dropped", st.Dropped,
	)
}

func (b *Bus) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Delivered: b.delivered.Load(),
		Dropped:   b.dropped.Load(),
	}
}

// Consume calls fn for each event on s until ctx is done or s is closed.
// It blocks; run it in its own goroutine.
func Consume(ctx context.Context, s *Subscription, fn func(Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.C():
			if !ok {
				return
			}
			fn(ev)
		}
	}
}

// Trace logs every event at debug level from its own goroutine until ctx is
// done or the bus is closed.
func (b *Bus) Trace(ctx context.Context) error {
	s, err := b.Subscribe(64)
	if err != nil {
		return err
	}
	go func() {
		defer s.Close()
		Consume(ctx, s, func(ev Event) {
			b.logger.Debug("event", "topic", ev.Topic)
		})
	}()
	return nil
}
