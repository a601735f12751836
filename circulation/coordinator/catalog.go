package coordinator

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// Catalog is the ordered collection of cataloged items.
type Catalog struct {
	items *registry[core.ItemIDString, *core.Item]
	inUse func(itemID core.ItemIDString) bool
}

// NewCatalog creates an empty Catalog that is not tied to any loans.
func NewCatalog() *Catalog {
	return newCatalog(nil)
}

func newCatalog(inUse func(itemID core.ItemIDString) bool) *Catalog {
	return &Catalog{
		items: newRegistry[core.ItemIDString, *core.Item](core.ErrDuplicateItem, core.ErrUnknownItem),
		inUse: inUse,
	}
}

// AddItem adds an item. Adding an item ID twice fails with a conflict error.
func (c *Catalog) AddItem(item *core.Item) error {
	return c.items.add(item.ItemID(), item)
}

// Item looks up an item by ID.
func (c *Catalog) Item(itemID core.ItemIDString) (*core.Item, error) {
	return c.items.get(itemID)
}

// RemoveItem removes an item from the catalog. Items with copies out on loan stay.
func (c *Catalog) RemoveItem(itemID core.ItemIDString) error {
	item, err := c.items.get(itemID)
	if err != nil {
		return err
	}

	if item.AvailableCopies() < item.TotalCopies() || (c.inUse != nil && c.inUse(itemID)) {
		return fmt.Errorf("%w: %s", core.ErrItemOnLoan, itemID)
	}

	return c.items.remove(itemID)
}

// ListItems returns all items in the order they were added.
func (c *Catalog) ListItems() []*core.Item {
	return c.items.values()
}

// SearchByKeyword returns the items whose title contains keyword, case-insensitively.
func (c *Catalog) SearchByKeyword(keyword string) []*core.Item {
	return core.SearchByKeyword(c.items.values(), keyword)
}

// SearchByCreator returns the items with a creator matching name, case-insensitively.
func (c *Catalog) SearchByCreator(name string) []*core.Item {
	return core.SearchByCreator(c.items.values(), name)
}

func (c *Catalog) ItemCount() int {
	return c.items.len()
}

// CatalogView is a read-only view of a System's catalog.
// Items enter and leave it through System.AddItem and System.RemoveItem.
type CatalogView struct {
	catalog *Catalog
}

// Item looks up an item by ID.
func (v CatalogView) Item(itemID core.ItemIDString) (*core.Item, error) {
	return v.catalog.Item(itemID)
}

// ListItems returns all items in the order they were added.
func (v CatalogView) ListItems() []*core.Item {
	return v.catalog.ListItems()
}

// SearchByKeyword returns the items whose title contains keyword, case-insensitively.
func (v CatalogView) SearchByKeyword(keyword string) []*core.Item {
	return v.catalog.SearchByKeyword(keyword)
}

// SearchByCreator returns the items with a creator matching name, case-insensitively.
func (v CatalogView) SearchByCreator(name string) []*core.Item {
	return v.catalog.SearchByCreator(name)
}

func (v CatalogView) ItemCount() int {
	return v.catalog.ItemCount()
}
