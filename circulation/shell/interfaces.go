package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// AppendsEvents defines the journal operation needed by the Recorder.
// It is implemented by every journal engine.
type AppendsEvents interface {
	Append(ctx context.Context, event eventstore.StorableEvent, additionalEvents ...eventstore.StorableEvent) error
}

// QueriesEvents defines the journal operation needed by query handlers.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEvents, error)
}

// EventStore combines both journal operations.
type EventStore interface {
	AppendsEvents
	QueriesEvents
}

// EventSource is anything that collects domain events for the journal, e.g. a coordinator.System.
type EventSource interface {
	DrainEvents() core.DomainEvents
}
