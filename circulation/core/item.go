package core

import (
	"slices"
	"strings"
	"time"
)

// ItemKind is the closed set of item variants. Each kind carries its own due-date
// policy and copy accounting, see Item.CalculateDueDate and Item.Checkout.
type ItemKind int

const (
	KindGeneric ItemKind = iota
	KindBook
	KindJournal
	KindDVD
	KindEBook
)

const (
	journalShortLoanDays    = 7
	journalStandardLoanDays = 14
	dvdLoanDays             = 7
)

// String returns the human-readable type label of the kind.
func (k ItemKind) String() string {
	switch k {
	case KindGeneric:
		return "Generic Item"
	case KindBook:
		return "Book"
	case KindJournal:
		return "Journal"
	case KindDVD:
		return "DVD"
	case KindEBook:
		return "EBook"
	default:
		return "Unknown"
	}
}

// IsLicensed reports whether the kind is a licensed resource with unmetered access.
func (k ItemKind) IsLicensed() bool {
	return k == KindEBook
}

func (k ItemKind) isKnown() bool {
	return k >= KindGeneric && k <= KindEBook
}

// Circulable is the capability the loan rules need from a catalog item.
type Circulable interface {
	ItemID() ItemIDString
	TypeLabel() string
	CalculateDueDate(checkoutDate time.Time, role Role) time.Time
	Checkout() error
	ReturnCopy() error
}

// Item is a cataloged library item.
//
// Physical kinds keep 0 <= AvailableCopies() <= TotalCopies() at all times.
// Licensed kinds (EBook) never change their counters.
type Item struct {
	kind            ItemKind
	itemID          ItemIDString
	title           string
	creators        []string
	tags            []string
	availableCopies int
	totalCopies     int
	callNumber      string
	isbn            ISBNString
	genre           string
}

// ItemOption configures optional Item attributes.
type ItemOption func(*Item) error

// WithCallNumber sets the shelving call number.
func WithCallNumber(callNumber string) ItemOption {
	return func(i *Item) error {
		i.callNumber = strings.TrimSpace(callNumber)
		return nil
	}
}

// WithISBN sets the ISBN after validating its checksum.
func WithISBN(isbn ISBNString) ItemOption {
	return func(i *Item) error {
		if isbn == "" {
			return nil
		}

		if !IsValidISBN(isbn) {
			return ErrInvalidISBN
		}

		i.isbn = isbn

		return nil
	}
}

// WithGenre sets the genre, which is only meaningful for books.
func WithGenre(genre string) ItemOption {
	return func(i *Item) error {
		i.genre = strings.TrimSpace(genre)
		return nil
	}
}

// BuildItem creates an Item of the given kind with copies available copies out of copies total.
// Creator names are normalized, blank creators are dropped, tags are lower-cased and de-duplicated.
func BuildItem(
	kind ItemKind,
	itemID ItemIDString,
	title string,
	creators []string,
	tags []string,
	copies int,
	options ...ItemOption,
) (*Item, error) {

	if !kind.isKnown() {
		return nil, ErrUnknownItemKind
	}

	if strings.TrimSpace(itemID) == "" {
		return nil, ErrEmptyItemID
	}

	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	if copies < 0 {
		return nil, ErrNegativeCopies
	}

	item := &Item{
		kind:            kind,
		itemID:          strings.TrimSpace(itemID),
		title:           strings.TrimSpace(title),
		creators:        normalizeCreators(creators),
		tags:            make([]string, 0, len(tags)),
		availableCopies: copies,
		totalCopies:     copies,
	}

	for _, tag := range tags {
		item.AddTag(tag)
	}

	for _, option := range options {
		if err := option(item); err != nil {
			return nil, err
		}
	}

	return item, nil
}

// BuildGenericItem creates an item without a specialized policy.
func BuildGenericItem(itemID ItemIDString, title string, creators []string, tags []string, copies int, options ...ItemOption) (*Item, error) {
	return BuildItem(KindGeneric, itemID, title, creators, tags, copies, options...)
}

// BuildBook creates a book.
func BuildBook(itemID ItemIDString, title string, creators []string, tags []string, copies int, options ...ItemOption) (*Item, error) {
	return BuildItem(KindBook, itemID, title, creators, tags, copies, options...)
}

// BuildJournal creates a journal or periodical.
func BuildJournal(itemID ItemIDString, title string, creators []string, tags []string, copies int, options ...ItemOption) (*Item, error) {
	return BuildItem(KindJournal, itemID, title, creators, tags, copies, options...)
}

// BuildDVD creates a DVD.
func BuildDVD(itemID ItemIDString, title string, creators []string, tags []string, copies int, options ...ItemOption) (*Item, error) {
	return BuildItem(KindDVD, itemID, title, creators, tags, copies, options...)
}

// BuildEBook creates a licensed electronic book.
func BuildEBook(itemID ItemIDString, title string, creators []string, tags []string, copies int, options ...ItemOption) (*Item, error) {
	return BuildItem(KindEBook, itemID, title, creators, tags, copies, options...)
}

func normalizeCreators(creators []string) []string {
	normalized := make([]string, 0, len(creators))

	for _, c := range creators {
		name, err := NormalizeName(c)
		if err != nil {
			continue // blank creator
		}

		normalized = append(normalized, name)
	}

	return normalized
}

func (i *Item) ItemID() ItemIDString { return i.itemID }
func (i *Item) Kind() ItemKind       { return i.kind }
func (i *Item) Title() string        { return i.title }
func (i *Item) CallNumber() string   { return i.callNumber }
func (i *Item) ISBN() ISBNString     { return i.isbn }
func (i *Item) Genre() string        { return i.genre }
func (i *Item) AvailableCopies() int { return i.availableCopies }
func (i *Item) TotalCopies() int     { return i.totalCopies }

// Creators returns a copy of the normalized creator names.
func (i *Item) Creators() []string {
	return slices.Clone(i.creators)
}

// Tags returns a copy of the subject tags in the order they were added.
func (i *Item) Tags() []string {
	return slices.Clone(i.tags)
}

// TypeLabel returns the short type label, e.g. "Book" or "DVD".
func (i *Item) TypeLabel() string {
	return i.kind.String()
}

// CalculateDueDate applies the item's own loan policy:
//
//	Generic, Book: 14 days for Student/Public, 28 days otherwise
//	Journal:       7 days for Student/Public, 14 days otherwise
//	DVD:           7 days for every role
//	EBook:         due on the checkout date itself
func (i *Item) CalculateDueDate(checkoutDate time.Time, role Role) time.Time {
	switch i.kind {
	case KindJournal:
		if role.HasShortLoans() {
			return AddDays(checkoutDate, journalShortLoanDays)
		}
		return AddDays(checkoutDate, journalStandardLoanDays)

	case KindDVD:
		return AddDays(checkoutDate, dvdLoanDays)

	case KindEBook:
		return ToDate(checkoutDate)

	default:
		return CalculateDueDate(checkoutDate, role)
	}
}

// IsAvailable reports whether a copy can be checked out right now.
func (i *Item) IsAvailable() bool {
	return i.kind.IsLicensed() || i.availableCopies > 0
}

// Checkout takes one physical copy out of circulation.
// Licensed items are not metered, so this is a no-op for them.
func (i *Item) Checkout() error {
	if i.kind.IsLicensed() {
		return nil
	}

	if i.availableCopies <= 0 {
		return ErrNoCopiesAvailable
	}

	i.availableCopies--

	return nil
}

// ReturnCopy puts one physical copy back into circulation.
// Licensed items are not metered, so this is a no-op for them.
func (i *Item) ReturnCopy() error {
	if i.kind.IsLicensed() {
		return nil
	}

	if i.availableCopies >= i.totalCopies {
		return ErrAllCopiesReturned
	}

	i.availableCopies++

	return nil
}

// AddTag adds a lower-cased subject tag, ignoring blanks and duplicates.
func (i *Item) AddTag(tag string) {
	t := strings.ToLower(strings.TrimSpace(tag))
	if t == "" || slices.Contains(i.tags, t) {
		return
	}

	i.tags = append(i.tags, t)
}

// RemoveTag removes a subject tag if present.
func (i *Item) RemoveTag(tag string) {
	t := strings.ToLower(strings.TrimSpace(tag))
	i.tags = slices.DeleteFunc(i.tags, func(existing string) bool { return existing == t })
}

// HasTag reports whether the item carries the subject tag.
func (i *Item) HasTag(tag string) bool {
	return slices.Contains(i.tags, strings.ToLower(strings.TrimSpace(tag)))
}
