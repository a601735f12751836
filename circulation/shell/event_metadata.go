package shell

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// ErrMappingToEventMetadataFailed is returned when journaled metadata cannot be decoded.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

// UnknownDesk is recorded when the Recorder was not told which desk it serves.
const UnknownDesk = "unknown"

// EventMetadata is journaled next to every circulation event.
//
// All events of one recorded batch share the CorrelationID, and each event's CausationID
// is the MessageID of the event recorded before it (the first one points at the batch).
// Desk names the circulation desk or terminal that recorded the batch.
type EventMetadata struct {
	MessageID     string `json:"message_id"`
	CausationID   string `json:"causation_id"`
	CorrelationID string `json:"correlation_id"`
	Desk          string `json:"desk"`
}

// BuildEventMetadata creates the metadata of one journaled event. A blank desk becomes UnknownDesk.
func BuildEventMetadata(messageID, causationID, correlationID uuid.UUID, desk string) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
		Desk:          normalizeDesk(desk),
	}
}

func normalizeDesk(desk string) string {
	desk = strings.TrimSpace(desk)
	if desk == "" {
		return UnknownDesk
	}

	return desk
}

// EventMetadataFrom decodes the metadata of a journaled event.
// Events journaled without metadata yield the zero EventMetadata.
func EventMetadataFrom(storableEvent eventstore.StorableEvent) (EventMetadata, error) {
	var metadata EventMetadata

	if err := jsoniter.ConfigFastest.Unmarshal(storableEvent.MetadataJSON, &metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return metadata, nil
}
