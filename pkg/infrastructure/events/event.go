package events

import (
	"time"
)

// Event is an immutable fact recorded by the pharmacy
type Event interface {
	Type() string
	StreamID() string
	Data() interface{}
	Timestamp() time.Time
	Version() int
}

// EventHandler receives events of the types it accepts
type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// Publisher is the write side of an EventStore
type Publisher interface {
	AppendEvent(streamID string, event Event) error
}

// EventStore keeps per-stream event logs and notifies subscribers
type EventStore interface {
	Publisher
	ReadEvents(streamID string, fromVersion int) ([]Event, error)
	ReadAllEvents(fromPosition int) ([]Event, error)
	Subscribe(eventTypes []string, handler EventHandler) error
	Unsubscribe(handler EventHandler) error
}

// BaseEvent is the concrete Event stored by the in-memory store
type BaseEvent struct {
	EventType    string
	Stream       string
	EventData    interface{}
	EventTime    time.Time
	EventVersion int
}

// Type is the event name, e.g. drug.updated
func (e BaseEvent) Type() string {
	return e.EventType
}

// StreamID is the batch number, or PharmacyStream for pharmacy-wide events
func (e BaseEvent) StreamID() string {
	return e.Stream
}

// Data is the payload, one of the structs in pharmacy_events.go
func (e BaseEvent) Data() interface{} {
	return e.EventData
}

// Timestamp is the pharmacy clock reading when the event was raised
func (e BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

// Version is the 1-based position of the event within its stream
func (e BaseEvent) Version() int {
	return e.EventVersion
}

// NewEvent creates the first version of an event; stores renumber it on append
func NewEvent(eventType, streamID string, data interface{}, at time.Time) Event {
	return BaseEvent{
		EventType:    eventType,
		Stream:       streamID,
		EventData:    data,
		EventTime:    at,
		EventVersion: 1,
	}
}

// HandlerFunc adapts a function to EventHandler for the listed event types.
// Fn runs after the pharmacy has released its lock and may call back into it.
type HandlerFunc struct {
	Types []string
	Fn    func(event Event) error
}

// Handle calls Fn
func (h *HandlerFunc) Handle(event Event) error {
	return h.Fn(event)
}

// CanHandle reports whether eventType is in Types
func (h *HandlerFunc) CanHandle(eventType string) bool {
	for _, t := range h.Types {
		if t == eventType {
			return true
		}
	}
	return false
}
