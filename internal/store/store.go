// Package store holds the application state of one storefront session. All
// mutation goes through Dispatch, which runs the pure Reduce function under a
// lock and notifies subscribers.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/order"
)

const defaultEventBuffer = 16

type Store struct {
	mu      sync.Mutex
	state   State
	clock   func() time.Time
	log     *slog.Logger
	subs    map[int]chan Event
	nextSub int
	buffer  int
	ids     *order.Sequence
}

type Option func(*Store)

// WithClock replaces time.Now for stamping checkouts, status changes and events.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

func WithLocale(locale domain.Locale) Option {
	return func(s *Store) { s.state = Initial(locale) }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithOrderSequence draws checkout ids from a sequence shared with other stores.
func WithOrderSequence(seq *order.Sequence) Option {
	return func(s *Store) { s.ids = seq }
}

// WithEventBuffer sets the channel capacity given to each subscriber.
func WithEventBuffer(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.buffer = n
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		state:  Initial(domain.DefaultLocale),
		clock:  time.Now,
		subs:   make(map[int]chan Event),
		buffer: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies one intent and returns its outcome.
func (s *Store) Dispatch(in Intent) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	switch v := in.(type) {
	case Checkout:
		if v.At.IsZero() {
			v.At = now
		}
		if v.ID == 0 && s.ids != nil {
			v.ID = s.ids.Next(v.At)
		}
		in = v
	case SetOrderStatus:
		if v.At.IsZero() {
			v.At = now
		}
		in = v
	}

	next, out := Reduce(s.state, in)
	s.logOutcome(in, out)
	if out.Changed {
		s.state = next
	}
	for _, ev := range out.Events {
		ev.At = now
		s.publish(ev)
	}
	return out
}

// Subscribe registers a listener. Events are delivered in dispatch order; when
// the channel is full the event is dropped for that subscriber. The returned
// function unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, s.buffer)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

func (s *Store) publish(ev Event) {
	for id, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			s.log.Warn("Dropping store event for slow subscriber", "subscriber", id, "kind", ev.Kind)
		}
	}
}

func (s *Store) logOutcome(in Intent, out Outcome) {
	name := fmt.Sprintf("%T", in)
	var nf *domain.NotFoundError
	switch {
	case out.Err == nil && !out.Changed && len(out.Events) == 0:
		s.log.Debug("Intent had no effect", "intent", name)
	case errors.As(out.Err, &nf):
		s.log.Debug("Intent referenced unknown entity", "intent", name, "error", out.Err)
	case out.Err != nil:
		s.log.Info("Intent rejected", "intent", name, "error", out.Err)
	default:
		s.log.Debug("Intent applied", "intent", name)
	}
}
