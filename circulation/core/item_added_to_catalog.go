package core

import (
	"time"
)

// ItemAddedToCatalogEventType is the event type identifier.
const ItemAddedToCatalogEventType = "ItemAddedToCatalog"

// ItemAddedToCatalog represents when an item is added to the catalog.
type ItemAddedToCatalog struct {
	ItemID      ItemIDString
	ItemType    string
	Title       string
	Creators    []string
	ISBN        ISBNString
	TotalCopies int
	OccurredAt  OccurredAt
}

// BuildItemAddedToCatalog creates a new ItemAddedToCatalog event.
func BuildItemAddedToCatalog(
	itemID ItemIDString,
	itemType string,
	title string,
	creators []string,
	isbn ISBNString,
	totalCopies int,
	occurredAt time.Time,
) ItemAddedToCatalog {

	return ItemAddedToCatalog{
		ItemID:      itemID,
		ItemType:    itemType,
		Title:       title,
		Creators:    creators,
		ISBN:        isbn,
		TotalCopies: totalCopies,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ItemAddedToCatalog) IsEventType() string {
	return ItemAddedToCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemAddedToCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ItemAddedToCatalog) IsErrorEvent() bool {
	return false
}
