package core

import (
	"time"
)

// ItemRemovedFromCatalogEventType is the event type identifier.
const ItemRemovedFromCatalogEventType = "ItemRemovedFromCatalog"

// ItemRemovedFromCatalog represents when an item without copies out on loan leaves the catalog.
type ItemRemovedFromCatalog struct {
	ItemID     ItemIDString
	ItemType   string
	Title      string
	OccurredAt OccurredAt
}

// BuildItemRemovedFromCatalog creates a new ItemRemovedFromCatalog event.
func BuildItemRemovedFromCatalog(
	itemID ItemIDString,
	itemType string,
	title string,
	occurredAt time.Time,
) ItemRemovedFromCatalog {

	return ItemRemovedFromCatalog{
		ItemID:     itemID,
		ItemType:   itemType,
		Title:      title,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ItemRemovedFromCatalog) IsEventType() string {
	return ItemRemovedFromCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemRemovedFromCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ItemRemovedFromCatalog) IsErrorEvent() bool {
	return false
}
