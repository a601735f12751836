// Package eventstore provides the journal abstractions shared by the storage engines
// that keep the circulation event log.
//
// The journal is append-only. Events are stored as scalars plus JSON, which keeps the
// engines agnostic of the domain events of the client code.
//
// Events can be queried back with a Filter built from:
//   - Event types
//   - JSON payload predicates
//   - Time ranges (occurred from/until)
//
// Key types:
//   - Filter: Defines criteria for querying events
//   - StorableEvent: Represents an event that can be stored and retrieved
//   - StorableEvents: Collection of storable events
//
// Common usage pattern:
//
//	filter := BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			core.ItemCheckedOutEventType,
//			core.ItemReturnedEventType).
//		AndAnyPredicateOf(P("UserID", userID)).
//		Finalize()
//
//	events, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	newEvent, err := eventstore.BuildStorableEvent(eventType, time.Now(), payload, metadata)
//	err = store.Append(ctx, newEvent)
package eventstore
