package coordinator

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// System is the circulation coordinator of one library.
// It is not safe for concurrent use.
type System struct {
	name    string
	policy  Policy
	now     func() time.Time
	users   *registry[core.UserIDString, *core.User]
	catalog *Catalog
	loans   *registry[core.LoanIDString, *core.Loan]
	holds   *registry[core.HoldIDString, *core.Hold]
	outbox  core.DomainEvents
}

// NewSystem creates an empty System with the default policy unless overridden by options.
func NewSystem(name string, options ...Option) (*System, error) {
	if strings.TrimSpace(name) == "" {
		return nil, core.ErrEmptySystemName
	}

	s := &System{
		name:   strings.TrimSpace(name),
		policy: DefaultPolicy(),
		now:    time.Now,
		users:  newRegistry[core.UserIDString, *core.User](core.ErrDuplicateUser, core.ErrUnknownUser),
		loans:  newRegistry[core.LoanIDString, *core.Loan](core.ErrDuplicateLoan, core.ErrUnknownLoan),
		holds:  newRegistry[core.HoldIDString, *core.Hold](core.ErrDuplicateHold, core.ErrUnknownHold),
		outbox: make(core.DomainEvents, 0),
	}

	s.catalog = newCatalog(s.hasActiveLoanFor)

	for _, option := range options {
		option(s)
	}

	if err := s.policy.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *System) Name() string         { return s.name }
func (s *System) Policy() Policy       { return s.policy }
func (s *System) Catalog() CatalogView { return CatalogView{catalog: s.catalog} }

// AddUser registers a user. Registering a user ID twice fails with a conflict error.
func (s *System) AddUser(user *core.User) error {
	if err := s.users.add(user.UserID(), user); err != nil {
		return err
	}

	s.record(core.BuildUserRegistered(user.UserID(), user.Name(), string(user.Role()), s.now()))

	return nil
}

// User looks up a user by ID.
func (s *System) User(userID core.UserIDString) (*core.User, error) {
	return s.users.get(userID)
}

// Users returns all users in registration order.
func (s *System) Users() []*core.User {
	return s.users.values()
}

// AddItem adds an item to the catalog. Adding an item ID twice fails with a conflict error.
func (s *System) AddItem(item *core.Item) error {
	if err := s.catalog.AddItem(item); err != nil {
		return err
	}

	s.record(core.BuildItemAddedToCatalog(
		item.ItemID(),
		item.TypeLabel(),
		item.Title(),
		item.Creators(),
		item.ISBN(),
		item.TotalCopies(),
		s.now(),
	))

	return nil
}

// RemoveItem takes an item out of the catalog. Items with copies out or active loans stay.
func (s *System) RemoveItem(itemID core.ItemIDString) error {
	item, err := s.catalog.Item(itemID)
	if err != nil {
		return err
	}

	if err = s.catalog.RemoveItem(itemID); err != nil {
		return err
	}

	s.record(core.BuildItemRemovedFromCatalog(item.ItemID(), item.TypeLabel(), item.Title(), s.now()))

	return nil
}

// Item looks up a cataloged item by ID.
func (s *System) Item(itemID core.ItemIDString) (*core.Item, error) {
	return s.catalog.Item(itemID)
}

// CheckoutItem lends one copy of an item to a user.
//
// The due date follows the item's own policy for the user's role. Active holds of the
// same user on the item are fulfilled by the checkout. Nothing changes if any check fails.
func (s *System) CheckoutItem(
	loanID core.LoanIDString,
	userID core.UserIDString,
	itemID core.ItemIDString,
	checkoutDate time.Time,
) (*core.Loan, error) {

	user, err := s.users.get(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.catalog.Item(itemID)
	if err != nil {
		return nil, err
	}

	loan, err := core.BuildLoan(loanID, user.UserID(), item.ItemID(), item.CalculateDueDate(checkoutDate, user.Role()))
	if err != nil {
		return nil, err
	}

	if s.loans.has(loan.LoanID()) {
		return nil, fmt.Errorf("%w: %s", core.ErrDuplicateLoan, loan.LoanID())
	}

	if !item.IsAvailable() {
		return nil, fmt.Errorf("%w: %s", core.ErrNoCopiesAvailable, itemID)
	}

	if err = item.Checkout(); err != nil {
		return nil, err
	}

	_ = s.loans.add(loan.LoanID(), loan) // uniqueness checked above
	user.AddLoan(loan.LoanID())

	occurredAt := s.now()
	s.record(core.BuildItemCheckedOut(
		loan.LoanID(),
		user.UserID(),
		item.ItemID(),
		item.TypeLabel(),
		checkoutDate,
		loan.Due(),
		occurredAt,
	))

	for _, hold := range s.holds.filter(func(h *core.Hold) bool {
		return h.UserID() == user.UserID() && h.ItemID() == item.ItemID() && h.IsActive(checkoutDate)
	}) {
		_ = hold.Fulfill() // an active hold is never cancelled
		s.record(core.BuildHoldFulfilled(hold.HoldID(), hold.UserID(), hold.ItemID(), loan.LoanID(), occurredAt))
	}

	return loan, nil
}

// ReturnItem closes a loan and returns the assessed fine, 0 when returned in time.
// The fine uses the policy's daily rate unless WithDailyRate overrides it.
func (s *System) ReturnItem(loanID core.LoanIDString, returnDate time.Time, options ...ReturnOption) (float64, error) {
	cfg := returnConfig{dailyRate: s.policy.DailyFineRate}
	for _, option := range options {
		option(&cfg)
	}

	if cfg.dailyRate < 0 {
		return 0, core.ErrNegativeDailyRate
	}

	loan, err := s.loans.get(loanID)
	if err != nil {
		return 0, err
	}

	if !loan.IsActive() {
		return 0, fmt.Errorf("%w: %s", core.ErrLoanAlreadyClosed, loanID)
	}

	item, err := s.catalog.Item(loan.ItemID())
	if err != nil {
		return 0, err
	}

	user, err := s.users.get(loan.UserID())
	if err != nil {
		return 0, err
	}

	if !user.HasLoan(loanID) {
		return 0, fmt.Errorf("%w: %s", core.ErrLoanNotHeldByUser, loanID)
	}

	daysLate := max(0, core.DaysBetween(loan.Due(), returnDate))

	fine, err := loan.ReturnItem(item, returnDate, cfg.dailyRate)
	if err != nil {
		return 0, err
	}

	_ = user.RemoveLoan(loanID) // presence checked above

	if fine > 0 {
		_ = user.AddFine(fine) // fines are never negative
	}

	s.record(core.BuildItemReturned(loanID, user.UserID(), item.ItemID(), returnDate, daysLate, fine, s.now()))

	return fine, nil
}

// RenewLoan asks to extend a loan on behalf of a user.
//
// A denied renewal is reported in the RenewalDecision, not as an error.
// Errors only signal unknown loans, users or items.
func (s *System) RenewLoan(loanID core.LoanIDString, userID core.UserIDString, today time.Time) (core.RenewalDecision, error) {
	loan, err := s.loans.get(loanID)
	if err != nil {
		return core.RenewalDecision{}, err
	}

	user, err := s.users.get(userID)
	if err != nil {
		return core.RenewalDecision{}, err
	}

	item, err := s.catalog.Item(loan.ItemID())
	if err != nil {
		return core.RenewalDecision{}, err
	}

	decision := loan.Renew(user, item, today, s.holds.values(), s.policy.renewOptions()...)

	if decision.IsGranted() {
		s.record(core.BuildLoanRenewed(loanID, userID, item.ItemID(), decision.NewDue, loan.Renewals(), s.now()))
	} else {
		s.record(core.BuildLoanRenewalDenied(loanID, userID, item.ItemID(), decision.Reason, s.now()))
	}

	return decision, nil
}

// Loan looks up a loan by ID.
func (s *System) Loan(loanID core.LoanIDString) (*core.Loan, error) {
	return s.loans.get(loanID)
}

// Loans returns all loans, active and closed, in checkout order.
func (s *System) Loans() []*core.Loan {
	return s.loans.values()
}

// LoansForUser returns all loans of a user, active and closed, in checkout order.
func (s *System) LoansForUser(userID core.UserIDString) ([]*core.Loan, error) {
	if !s.users.has(userID) {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownUser, userID)
	}

	return s.loans.filter(func(l *core.Loan) bool { return l.UserID() == userID }), nil
}

// PlaceHold reserves an item for a user until expiresOn. The user and item must be known.
func (s *System) PlaceHold(
	holdID core.HoldIDString,
	userID core.UserIDString,
	itemID core.ItemIDString,
	placedOn time.Time,
	expiresOn time.Time,
) (*core.Hold, error) {

	if !s.users.has(userID) {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownUser, userID)
	}

	if _, err := s.catalog.Item(itemID); err != nil {
		return nil, err
	}

	hold, err := core.BuildHold(holdID, userID, itemID, placedOn, expiresOn)
	if err != nil {
		return nil, err
	}

	if s.holds.has(hold.HoldID()) {
		return nil, fmt.Errorf("%w: %s", core.ErrDuplicateHold, hold.HoldID())
	}

	_ = s.holds.add(hold.HoldID(), hold) // uniqueness checked above

	s.record(core.BuildHoldPlaced(hold.HoldID(), hold.UserID(), hold.ItemID(), hold.ExpiresOn(), s.now()))

	return hold, nil
}

// Hold looks up a hold by ID.
func (s *System) Hold(holdID core.HoldIDString) (*core.Hold, error) {
	return s.holds.get(holdID)
}

// Holds returns all holds in placement order.
func (s *System) Holds() []*core.Hold {
	return s.holds.values()
}

// NotifyHold marks the requester of a hold as notified.
func (s *System) NotifyHold(holdID core.HoldIDString) error {
	hold, err := s.holds.get(holdID)
	if err != nil {
		return err
	}

	if err = hold.Notify(); err != nil {
		return err
	}

	s.record(core.BuildHoldNotified(holdID, hold.UserID(), hold.ItemID(), s.now()))

	return nil
}

// CancelHold cancels a hold that is not fulfilled yet.
func (s *System) CancelHold(holdID core.HoldIDString) error {
	hold, err := s.holds.get(holdID)
	if err != nil {
		return err
	}

	if err = hold.Cancel(); err != nil {
		return err
	}

	s.record(core.BuildHoldCancelled(holdID, hold.UserID(), hold.ItemID(), s.now()))

	return nil
}

// ExtendHold moves the expiry date of an active hold and returns the new expiry date.
func (s *System) ExtendHold(holdID core.HoldIDString, additionalDays int, today time.Time) (time.Time, error) {
	hold, err := s.holds.get(holdID)
	if err != nil {
		return time.Time{}, err
	}

	expiresOn, err := hold.Extend(additionalDays, today)
	if err != nil {
		return time.Time{}, err
	}

	s.record(core.BuildHoldExtended(holdID, hold.UserID(), hold.ItemID(), expiresOn, s.now()))

	return expiresOn, nil
}

// ActiveHoldsForItem returns the holds on an item that are active today, in placement order.
func (s *System) ActiveHoldsForItem(itemID core.ItemIDString, today time.Time) []*core.Hold {
	return s.holds.filter(func(h *core.Hold) bool {
		return h.ItemID() == itemID && h.IsActive(today)
	})
}

// PayFine reduces a user's fine balance and returns what remains.
func (s *System) PayFine(userID core.UserIDString, amount float64) (float64, error) {
	user, err := s.users.get(userID)
	if err != nil {
		return 0, err
	}

	remaining, err := user.PayFine(amount)
	if err != nil {
		return remaining, err
	}

	s.record(core.BuildFinePaid(userID, amount, remaining, s.now()))

	return remaining, nil
}

// PendingEvents returns a copy of the domain events recorded since the last drain.
func (s *System) PendingEvents() core.DomainEvents {
	return slices.Clone(s.outbox)
}

// DrainEvents returns the domain events recorded since the last drain and clears the outbox.
func (s *System) DrainEvents() core.DomainEvents {
	events := s.outbox
	s.outbox = make(core.DomainEvents, 0)

	return events
}

func (s *System) record(event core.DomainEvent) {
	s.outbox = append(s.outbox, event)
}

func (s *System) hasActiveLoanFor(itemID core.ItemIDString) bool {
	return len(s.loans.filter(func(l *core.Loan) bool { return l.ItemID() == itemID && l.IsActive() })) > 0
}
