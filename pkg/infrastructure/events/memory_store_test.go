package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore()
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.AppendEvent("FER-1", NewEvent(DrugUpdatedEvent, "FER-1", DrugUpdated{Name: "Fervex"}, at)))
	require.NoError(t, store.AppendEvent("DAF-1", NewEvent(DrugUpdatedEvent, "DAF-1", DrugUpdated{Name: "Dafalgan"}, at)))
	require.NoError(t, store.AppendEvent("FER-1", NewEvent(AlertRaisedEvent, "FER-1", AlertRaised{}, at)))

	stream, err := store.ReadEvents("FER-1", 0)
	require.NoError(t, err)
	require.Len(t, stream, 2)
	assert.Equal(t, 1, stream[0].Version())
	assert.Equal(t, 2, stream[1].Version())
	assert.Equal(t, AlertRaisedEvent, stream[1].Type())
	assert.Equal(t, at, stream[0].Timestamp())

	fromSecond, err := store.ReadEvents("FER-1", 2)
	require.NoError(t, err)
	assert.Len(t, fromSecond, 1)

	beyond, err := store.ReadEvents("FER-1", 5)
	require.NoError(t, err)
	assert.Empty(t, beyond)

	missing, err := store.ReadEvents("nope", 1)
	require.NoError(t, err)
	assert.Empty(t, missing)

	all, err := store.ReadAllEvents(1)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "DAF-1", all[0].StreamID())
}

func TestInMemoryEventStore_Subscribe(t *testing.T) {
	store := NewInMemoryEventStore()
	var received []string
	handler := &HandlerFunc{
		Types: []string{AlertRaisedEvent},
		Fn: func(event Event) error {
			received = append(received, event.StreamID())
			return nil
		},
	}
	require.NoError(t, store.Subscribe([]string{AlertRaisedEvent}, handler))

	now := time.Now()
	require.NoError(t, store.AppendEvent("A", NewEvent(AlertRaisedEvent, "A", nil, now)))
	require.NoError(t, store.AppendEvent("B", NewEvent(DrugUpdatedEvent, "B", nil, now)))
	require.NoError(t, store.AppendEvent("C", NewEvent(AlertRaisedEvent, "C", nil, now)))

	// notification is synchronous, no waiting needed
	assert.Equal(t, []string{"A", "C"}, received)

	require.NoError(t, store.Unsubscribe(handler))
	require.NoError(t, store.AppendEvent("D", NewEvent(AlertRaisedEvent, "D", nil, now)))
	assert.Equal(t, []string{"A", "C"}, received)
}

func TestInMemoryEventStore_HandlerErrors(t *testing.T) {
	store := NewInMemoryEventStore()
	boom := errors.New("boom")
	require.NoError(t, store.Subscribe([]string{AlertsClearedEvent}, &HandlerFunc{
		Types: []string{AlertsClearedEvent},
		Fn:    func(Event) error { return boom },
	}))

	err := store.AppendEvent(PharmacyStream, NewAlertsClearedEvent(3, time.Now()))
	assert.ErrorIs(t, err, boom)

	// the event is stored even when a handler fails
	stored, err := store.ReadEvents(PharmacyStream, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, AlertsCleared{Count: 3}, stored[0].Data())
}

func TestBaseEvent_Accessors(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	event := NewAlertsClearedEvent(3, at)

	assert.Equal(t, AlertsClearedEvent, event.Type())
	assert.Equal(t, PharmacyStream, event.StreamID())
	assert.Equal(t, AlertsCleared{Count: 3}, event.Data())
	assert.Equal(t, at, event.Timestamp())
	assert.Equal(t, 1, event.Version())
}

func TestHandlerFunc_CanHandle(t *testing.T) {
	handler := &HandlerFunc{Types: []string{DrugUpdatedEvent, AlertRaisedEvent}}

	assert.True(t, handler.CanHandle(DrugUpdatedEvent))
	assert.True(t, handler.CanHandle(AlertRaisedEvent))
	assert.False(t, handler.CanHandle(AlertsClearedEvent))
}
