// Package eventsource provides append-only event streams with optimistic
// concurrency control. A stream is an ordered sequence of versioned events;
// appending at the wrong expected version fails with ErrConcurrencyConflict
// rather than corrupting the stream.
//
// Two Store implementations are provided: MemoryStore for tests and
// ephemeral use, and SQLiteStore for durable storage.
package eventsource

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is a single immutable entry in a stream.
type Event struct {
	// ID is a globally unique event identifier.
	ID string `json:"id"`

	// StreamID identifies the stream this event belongs to.
	StreamID string `json:"stream_id"`

	// Version is the position of the event within its stream, starting at 0.
	// It is assigned by the store on append.
	Version int `json:"version"`

	// Type is the event type name.
	Type string `json:"type"`

	// Data is the JSON-encoded event payload.
	Data json.RawMessage `json:"data,omitempty"`

	// CreatedAt records when the event was constructed.
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent creates an event for the given stream with a JSON-encoded payload.
// The version is left unset; the store assigns it on append.
func NewEvent(streamID, eventType string, data any) (*Event, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode event data: %w", err)
		}
		raw = encoded
	}

	return &Event{
		ID:        uuid.New().String(),
		StreamID:  streamID,
		Type:      eventType,
		Data:      raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the event payload into the given value.
func (e *Event) Decode(into any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("event %s has no data", e.ID)
	}
	return json.Unmarshal(e.Data, into)
}
