package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a domain event routed through the transactional outbox. The
// stream name doubles as the outbox topic.
type Event interface {
	GetEventHeader() Header
	GetStreamName() string
}

// Header identifies an event instance. It is embedded in every concrete
// event and serialized with it, so the fields carry wire tags.
type Header struct {
	ID        uuid.UUID         `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (e *Header) GetEventHeader() Header {
	return *e
}

func NewEventHeader() Header {
	return Header{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
	}
}

// Recorder collects events raised by an aggregate until the repository
// publishes them. Aggregates embed it; a nil receiver is a no-op so
// nil-safe aggregate methods stay nil-safe.
type Recorder struct {
	events []Event
}

func (e *Recorder) AddEvent(event Event) {
	if e == nil {
		return
	}
	e.events = append(e.events, event)
}

func (e *Recorder) GetUncommittedEvents() []Event {
	if e == nil {
		return nil
	}
	return e.events
}

func (e *Recorder) MarkEventsAsCommitted() {
	if e == nil {
		return
	}
	e.events = nil
}
