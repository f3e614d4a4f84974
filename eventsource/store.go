package eventsource

import (
	"context"
	"errors"
	"sync"
)

// ErrConcurrencyConflict indicates an append with a stale expected version.
var ErrConcurrencyConflict = errors.New("eventsource: concurrency conflict")

// EventFilter selects events for ReadAll.
type EventFilter struct {
	// StreamID restricts results to a single stream. Empty matches all.
	StreamID string

	// Types restricts results to the given event types. Empty matches all.
	Types []string
}

func (f EventFilter) matches(e *Event) bool {
	if f.StreamID != "" && e.StreamID != f.StreamID {
		return false
	}
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if e.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Store persists event streams.
type Store interface {
	// Append adds events to a stream. expectedVersion must equal the
	// current stream version (-1 for a new stream) or the append fails
	// with ErrConcurrencyConflict. Returns the new stream version.
	Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error)

	// Read returns events in a stream with Version >= fromVersion,
	// in version order.
	Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error)

	// ReadAll returns events across streams matching the filter,
	// in global append order.
	ReadAll(ctx context.Context, filter EventFilter) ([]*Event, error)

	// StreamVersion returns the version of the last event in a stream,
	// or -1 if the stream does not exist.
	StreamVersion(ctx context.Context, streamID string) (int, error)

	// DeleteStream removes a stream and all its events.
	DeleteStream(ctx context.Context, streamID string) error

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
	log     []*Event // all events in global append order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		streams: make(map[string][]*Event),
	}
}

// Append adds events to a stream with an optimistic version check.
func (s *MemoryStore) Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stream := s.streams[streamID]
	current := len(stream) - 1
	if expectedVersion != current {
		return current, ErrConcurrencyConflict
	}

	for i, event := range events {
		event.StreamID = streamID
		event.Version = expectedVersion + 1 + i
		stored := *event
		stream = append(stream, &stored)
		s.log = append(s.log, &stored)
	}
	s.streams[streamID] = stream

	return len(stream) - 1, nil
}

// Read returns events in a stream starting at fromVersion.
func (s *MemoryStore) Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Event
	for _, event := range s.streams[streamID] {
		if event.Version >= fromVersion {
			copied := *event
			result = append(result, &copied)
		}
	}
	return result, nil
}

// ReadAll returns events across streams matching the filter in append order.
func (s *MemoryStore) ReadAll(ctx context.Context, filter EventFilter) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Event
	for _, event := range s.log {
		if filter.matches(event) {
			copied := *event
			result = append(result, &copied)
		}
	}
	return result, nil
}

// StreamVersion returns the last version in a stream, or -1.
func (s *MemoryStore) StreamVersion(ctx context.Context, streamID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[streamID]) - 1, nil
}

// DeleteStream removes a stream.
func (s *MemoryStore) DeleteStream(ctx context.Context, streamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.streams[streamID]; !ok {
		return nil
	}
	delete(s.streams, streamID)

	kept := s.log[:0]
	for _, event := range s.log {
		if event.StreamID != streamID {
			kept = append(kept, event)
		}
	}
	s.log = kept
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
