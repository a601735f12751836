package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0)

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	payload := storableEvent.PayloadJSON

	switch storableEvent.EventType {
	case core.UserRegisteredEventType:
		return unmarshalPayload[core.UserRegistered](payload)

	case core.ItemAddedToCatalogEventType:
		return unmarshalPayload[core.ItemAddedToCatalog](payload)

	case core.ItemRemovedFromCatalogEventType:
		return unmarshalPayload[core.ItemRemovedFromCatalog](payload)

	case core.ItemCheckedOutEventType:
		return unmarshalPayload[core.ItemCheckedOut](payload)

	case core.ItemReturnedEventType:
		return unmarshalPayload[core.ItemReturned](payload)

	case core.LoanRenewedEventType:
		return unmarshalPayload[core.LoanRenewed](payload)

	case core.LoanRenewalDeniedEventType:
		return unmarshalPayload[core.LoanRenewalDenied](payload)

	case core.HoldPlacedEventType:
		return unmarshalPayload[core.HoldPlaced](payload)

	case core.HoldNotifiedEventType:
		return unmarshalPayload[core.HoldNotified](payload)

	case core.HoldFulfilledEventType:
		return unmarshalPayload[core.HoldFulfilled](payload)

	case core.HoldCancelledEventType:
		return unmarshalPayload[core.HoldCancelled](payload)

	case core.HoldExtendedEventType:
		return unmarshalPayload[core.HoldExtended](payload)

	case core.FinePaidEventType:
		return unmarshalPayload[core.FinePaid](payload)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(E)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}
