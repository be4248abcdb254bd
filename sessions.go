package calc

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions is a registry of independent calculators keyed by ID. Each
// session has its own objects and display context. Sessions is safe for
// concurrent use, and commands to the same session are serialized.
type Sessions struct {
	mu   sync.Mutex
	m    map[uuid.UUID]*session
	opts []Option
}

type session struct {
	mu sync.Mutex
	c  *Calculator
}

// NewSessions creates a registry whose sessions are created with opts.
func NewSessions(opts ...Option) *Sessions {
	return &Sessions{
		m:    make(map[uuid.UUID]*session),
		opts: opts,
	}
}

// Open starts a new session and returns its ID.
func (s *Sessions) Open() uuid.UUID {
	id := uuid.New()
	c := New(s.opts...)
	s.mu.Lock()
	s.m[id] = &session{c: c}
	s.mu.Unlock()
	return id
}

// Close ends a session. Closing an unknown session does nothing.
func (s *Sessions) Close(id uuid.UUID) {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

func (s *Sessions) get(id uuid.UUID) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss := s.m[id]
	if ss == nil {
		return nil, &LookupError{Name: id.String(), Kind: "session"}
	}
	return ss, nil
}

// Evaluate runs a command in a session and returns the formatted result.
func (s *Sessions) Evaluate(id uuid.UUID, src string) (string, error) {
	ss, err := s.get(id)
	if err != nil {
		return "", err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	v, err := ss.c.Evaluate(src)
	if err != nil {
		return "", err
	}
	return ss.c.Format(v), nil
}

// Lookup returns the value of a name in a session, as Calculator.Lookup.
func (s *Sessions) Lookup(id uuid.UUID, name string) (Value, error) {
	ss, err := s.get(id)
	if err != nil {
		return nil, err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.c.Lookup(name), nil
}
