package store

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/meuponto/internal/client/storage"
	"github.com/dmitrijs2005/meuponto/internal/hours"
	"github.com/dmitrijs2005/meuponto/internal/logging"
	"github.com/google/uuid"
)

// Store owns the in-memory state and orchestrates storage calls around it.
//
// Orchestrations (LoadAll, ClockIn, EditDay, DeleteDay, ...) run one at a
// time. Snapshot, Dispatch and Subscribe may be used from any goroutine.
type Store struct {
	gateway storage.Gateway
	log     logging.Logger
	now     func() time.Time
	newID   func() string

	// opMu serializes orchestrations so none of them reads state that
	// another one is about to replace.
	opMu sync.Mutex

	mu          sync.RWMutex
	state       State
	subscribers map[int]func(State)
	nextSubID   int
}

type Option func(*Store)

// WithClock overrides time.Now; it decides which day is "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the id source of new day records.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(gateway storage.Gateway, opts ...Option) *Store {
	s := &Store{
		gateway:     gateway,
		log:         logging.Nop(),
		now:         time.Now,
		newID:       uuid.NewString,
		state:       initialState(),
		subscribers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "store")
	return s
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Dispatch applies actions in order as one commit and then notifies
// subscribers once with the resulting snapshot.
func (s *Store) Dispatch(actions ...Action) {
	if len(actions) == 0 {
		return
	}

	s.mu.Lock()
	next := s.state
	for _, a := range actions {
		next = Reduce(next, a)
	}
	s.state = next
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next.clone())
	}
}

// Subscribe registers fn to be called after every Dispatch. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Today returns the local day key of the store clock.
func (s *Store) Today() string {
	return hours.DayOf(s.now())
}
