package memoryengine

import (
	"context"
	"errors"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	logMsgDecodePayloadFailed = "failed to decode payload of stored event"
	logMsgQueryCompleted      = "eventstore operation: query completed"
	logMsgEventsAppended      = "eventstore operation: events appended"
	logAttrError              = "error"
	logAttrEventType          = "event_type"
	logAttrEventCount         = "event_count"
)

type storedEvent struct {
	event   eventstore.StorableEvent
	payload map[string]any
}

// EventStore keeps appended events in insertion order. It is safe for concurrent use.
type EventStore struct {
	mu     sync.RWMutex
	events []storedEvent
	logger eventstore.Logger
}

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore)

// WithLogger sets the logger for the EventStore.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) {
		es.logger = logger
	}
}

// NewEventStore creates an empty EventStore.
func NewEventStore(options ...Option) *EventStore {
	es := &EventStore{}

	for _, option := range options {
		option(es)
	}

	return es
}

// Append appends one or multiple eventstore.StorableEvent(s) atomically, in the given order.
// Nothing is appended when one of the payloads is not a JSON object.
func (es *EventStore) Append(
	ctx context.Context,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	if err := ctx.Err(); err != nil {
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)
	decoded := make([]storedEvent, 0, len(allEvents))

	for _, e := range allEvents {
		payload := make(map[string]any)
		if err := jsoniter.ConfigFastest.Unmarshal(e.PayloadJSON, &payload); err != nil {
			if es.logger != nil {
				es.logger.Error(logMsgDecodePayloadFailed, logAttrError, err.Error(), logAttrEventType, e.EventType)
			}

			return errors.Join(eventstore.ErrAppendingEventFailed, eventstore.ErrInvalidPayloadJSON, err)
		}

		decoded = append(decoded, storedEvent{event: e, payload: payload})
	}

	es.mu.Lock()
	es.events = append(es.events, decoded...)
	es.mu.Unlock()

	if es.logger != nil {
		es.logger.Info(logMsgEventsAppended, logAttrEventCount, len(decoded))
	}

	return nil
}

// Query returns the events matching the eventstore.Filter in the order they were appended.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEvents, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	result := make(eventstore.StorableEvents, 0)

	for _, stored := range es.events {
		if filter.Matches(stored.event.EventType, stored.payload, stored.event.OccurredAt) {
			result = append(result, cloneEvent(stored.event))
		}
	}

	if es.logger != nil {
		es.logger.Info(logMsgQueryCompleted, logAttrEventCount, len(result))
	}

	return result, nil
}

// Len returns the number of stored events.
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.events)
}

func cloneEvent(event eventstore.StorableEvent) eventstore.StorableEvent {
	event.PayloadJSON = slices.Clone(event.PayloadJSON)
	event.MetadataJSON = slices.Clone(event.MetadataJSON)

	return event
}
