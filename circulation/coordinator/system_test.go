package coordinator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/coordinator"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

func Test_System_StudentReturnsBookLate(t *testing.T) {
	// arrange
	system := newSystem(t)
	student := addUser(t, system, "U1", "jane doe", "Student")
	book := addItem(t, system, core.KindBook, "B1", 1)

	// act
	loan, err := system.CheckoutItem("L1", "U1", "B1", core.Date(2025, time.January, 1))
	require.NoError(t, err)

	fine, err := system.ReturnItem("L1", core.Date(2025, time.January, 20))
	require.NoError(t, err)

	// assert
	assert.Equal(t, core.Date(2025, time.January, 15), loan.Due())
	assert.Equal(t, 1.25, fine)
	assert.Equal(t, 1, book.AvailableCopies())
	assert.False(t, loan.IsActive())
	assert.Equal(t, 1.25, student.TotalFines())
	assert.Equal(t, 0, student.ActiveLoanCount())
}

func Test_System_FacultyReturnsDVDOnTime(t *testing.T) {
	// arrange
	system := newSystem(t)
	faculty := addUser(t, system, "U1", "john roe", "Faculty")
	addItem(t, system, core.KindDVD, "D1", 2)

	// act
	loan, err := system.CheckoutItem("L1", "U1", "D1", core.Date(2025, time.March, 1))
	require.NoError(t, err)

	fine, err := system.ReturnItem("L1", core.Date(2025, time.March, 8))
	require.NoError(t, err)

	// assert
	assert.Equal(t, core.Date(2025, time.March, 8), loan.Due())
	assert.Equal(t, 0.0, fine)
	assert.False(t, faculty.HasFines())
}

func Test_System_CheckoutItem_Failures(t *testing.T) {
	checkoutDate := core.Date(2025, time.January, 1)

	t.Run("unknown user", func(t *testing.T) {
		system := newSystem(t)
		addItem(t, system, core.KindBook, "B1", 1)

		_, err := system.CheckoutItem("L1", "U404", "B1", checkoutDate)

		assert.ErrorIs(t, err, core.ErrUnknownUser)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		system := newSystem(t)
		addUser(t, system, "U1", "Jane Doe", "Student")

		_, err := system.CheckoutItem("L1", "U1", "B404", checkoutDate)

		assert.ErrorIs(t, err, core.ErrUnknownItem)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("no copies left", func(t *testing.T) {
		system := newSystem(t)
		user := addUser(t, system, "U1", "Jane Doe", "Student")
		book := addItem(t, system, core.KindBook, "B1", 1)
		_, err := system.CheckoutItem("L1", "U1", "B1", checkoutDate)
		require.NoError(t, err)
		system.DrainEvents()

		_, err = system.CheckoutItem("L2", "U1", "B1", checkoutDate)

		assert.ErrorIs(t, err, core.ErrNoCopiesAvailable)
		assert.ErrorIs(t, err, core.ErrCapacity)
		assert.Equal(t, 0, book.AvailableCopies())
		assert.Equal(t, []string{"L1"}, user.ActiveLoanIDs())
		assert.Len(t, system.Loans(), 1)
		assert.Empty(t, system.PendingEvents())
	})

	t.Run("duplicate loan id", func(t *testing.T) {
		system := newSystem(t)
		addUser(t, system, "U1", "Jane Doe", "Student")
		book := addItem(t, system, core.KindBook, "B1", 2)
		first, err := system.CheckoutItem("L1", "U1", "B1", checkoutDate)
		require.NoError(t, err)

		_, err = system.CheckoutItem("L1", "U1", "B1", checkoutDate)

		assert.ErrorIs(t, err, core.ErrDuplicateLoan)
		assert.ErrorIs(t, err, core.ErrConflict)
		assert.Equal(t, 1, book.AvailableCopies(), "a failed checkout must not take a copy")

		stored, err := system.Loan("L1")
		require.NoError(t, err)
		assert.Same(t, first, stored)
	})

	t.Run("blank loan id", func(t *testing.T) {
		system := newSystem(t)
		addUser(t, system, "U1", "Jane Doe", "Student")
		book := addItem(t, system, core.KindBook, "B1", 1)

		_, err := system.CheckoutItem(" ", "U1", "B1", checkoutDate)

		assert.ErrorIs(t, err, core.ErrEmptyLoanID)
		assert.Equal(t, 1, book.AvailableCopies())
	})
}

func Test_System_CheckoutItem_EBookNeverRunsOut(t *testing.T) {
	// arrange
	system := newSystem(t)
	addUser(t, system, "U1", "Jane Doe", "Student")
	addUser(t, system, "U2", "John Roe", "Staff")
	ebook := addItem(t, system, core.KindEBook, "E1", 0)
	checkoutDate := core.Date(2025, time.February, 3)

	// act
	first, firstErr := system.CheckoutItem("L1", "U1", "E1", checkoutDate)
	second, secondErr := system.CheckoutItem("L2", "U2", "E1", checkoutDate)

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.Equal(t, checkoutDate, first.Due())
	assert.Equal(t, checkoutDate, second.Due())
	assert.Equal(t, 0, ebook.AvailableCopies())
}

func Test_System_CheckoutItem_FulfillsBorrowersActiveHolds(t *testing.T) {
	// arrange
	system := newSystem(t)
	addUser(t, system, "U1", "Jane Doe", "Student")
	addUser(t, system, "U2", "John Roe", "Student")
	addItem(t, system, core.KindBook, "B1", 1)
	placedOn := core.Date(2025, time.January, 1)

	own, err := system.PlaceHold("H1", "U1", "B1", placedOn, core.Date(2025, time.January, 10))
	require.NoError(t, err)
	other, err := system.PlaceHold("H2", "U2", "B1", placedOn, core.Date(2025, time.January, 10))
	require.NoError(t, err)
	system.DrainEvents()

	// act
	_, err = system.CheckoutItem("L1", "U1", "B1", core.Date(2025, time.January, 5))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.HoldStatusFulfilled, own.Status())
	assert.Equal(t, core.HoldStatusActive, other.Status())
	assert.Equal(
		t,
		[]string{core.ItemCheckedOutEventType, core.HoldFulfilledEventType},
		eventTypes(system.DrainEvents()),
	)
}

func Test_System_ReturnItem_Failures(t *testing.T) {
	t.Run("unknown loan", func(t *testing.T) {
		system := newSystem(t)

		_, err := system.ReturnItem("L404", core.Date(2025, time.January, 1))

		assert.ErrorIs(t, err, core.ErrUnknownLoan)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("returned twice", func(t *testing.T) {
		system := newSystem(t)
		user := addUser(t, system, "U1", "Jane Doe", "Student")
		book := addItem(t, system, core.KindBook, "B1", 1)
		_, err := system.CheckoutItem("L1", "U1", "B1", core.Date(2025, time.January, 1))
		require.NoError(t, err)
		_, err = system.ReturnItem("L1", core.Date(2025, time.January, 20))
		require.NoError(t, err)

		_, err = system.ReturnItem("L1", core.Date(2025, time.January, 25))

		assert.ErrorIs(t, err, core.ErrLoanAlreadyClosed)
		assert.ErrorIs(t, err, core.ErrInvalidState)
		assert.Equal(t, 1, book.AvailableCopies())
		assert.Equal(t, 1.25, user.TotalFines(), "the fine is assessed once")
	})

	t.Run("negative daily rate", func(t *testing.T) {
		system := newSystem(t)
		addUser(t, system, "U1", "Jane Doe", "Student")
		addItem(t, system, core.KindBook, "B1", 1)
		loan, err := system.CheckoutItem("L1", "U1", "B1", core.Date(2025, time.January, 1))
		require.NoError(t, err)

		_, err = system.ReturnItem("L1", core.Date(2025, time.January, 20), coordinator.WithDailyRate(-1))

		assert.ErrorIs(t, err, core.ErrNegativeDailyRate)
		assert.True(t, loan.IsActive())
	})
}

func Test_System_ReturnItem_RateOverrides(t *testing.T) {
	// arrange
	system := newSystem(t, coordinator.WithPolicy(coordinator.Policy{DailyFineRate: 0.5, MaxRenewals: 2}))
	user := addUser(t, system, "U1", "Jane Doe", "Student")
	addItem(t, system, core.KindBook, "B1", 2)
	_, err := system.CheckoutItem("L1", "U1", "B1", core.Date(2025, time.January, 1))
	require.NoError(t, err)
	_, err = system.CheckoutItem("L2", "U1", "B1", core.Date(2025, time.January, 1))
	require.NoError(t, err)

	// act
	policyFine, err := system.ReturnItem("L1", core.Date(2025, time.January, 20))
	require.NoError(t, err)
	overriddenFine, err := system.ReturnItem("L2", core.Date(2025, time.January, 20), coordinator.WithDailyRate(1))
	require.NoError(t, err)

	// assert
	assert.Equal(t, 2.5, policyFine)
	assert.Equal(t, 5.0, overriddenFine)
	assert.Equal(t, 7.5, user.TotalFines())
}

func Test_System_RenewLoan(t *testing.T) {
	// arrange
	system := newSystem(t)
	addUser(t, system, "U1", "Jane Doe", "Student")
	addUser(t, system, "U2", "John Roe", "Faculty")
	addItem(t, system, core.KindJournal, "J1", 1)
	loan, err := system.CheckoutItem("L1", "U1", "J1", core.Date(2025, time.January, 1))
	require.NoError(t, err)
	require.Equal(t, core.Date(2025, time.January, 8), loan.Due())

	// act
	granted, err := system.RenewLoan("L1", "U1", core.Date(2025, time.January, 5))
	require.NoError(t, err)

	_, err = system.PlaceHold("H1", "U2", "J1", core.Date(2025, time.January, 6), core.Date(2025, time.January, 30))
	require.NoError(t, err)

	denied, err := system.RenewLoan("L1", "U1", core.Date(2025, time.January, 7))
	require.NoError(t, err)

	// assert
	assert.True(t, granted.IsGranted())
	assert.Equal(t, core.Date(2025, time.January, 19), granted.NewDue, "renewals use the generic role rule")
	assert.False(t, denied.IsGranted())
	assert.Equal(t, core.DenialReasonConflictingHold, denied.Reason)
	assert.Equal(t, core.Date(2025, time.January, 19), loan.Due())
	assert.Equal(t, 1, loan.Renewals())

	events := system.DrainEvents()
	require.Len(t, events, 7)
	assert.Equal(t, core.LoanRenewedEventType, events[4].IsEventType())
	assert.Equal(t, core.LoanRenewalDeniedEventType, events[6].IsEventType())
	assert.True(t, events[6].IsErrorEvent())
}

func Test_System_RenewLoan_HonorsPolicy(t *testing.T) {
	// arrange
	system := newSystem(t, coordinator.WithPolicy(coordinator.Policy{DailyFineRate: 0.25, MaxRenewals: 1, AllowOverdue: true}))
	addUser(t, system, "U1", "Jane Doe", "Staff")
	addItem(t, system, core.KindBook, "B1", 1)
	_, err := system.CheckoutItem("L1", "U1", "B1", core.Date(2025, time.January, 1))
	require.NoError(t, err)

	// act
	overdueRenewal, err := system.RenewLoan("L1", "U1", core.Date(2025, time.February, 10))
	require.NoError(t, err)
	secondRenewal, err := system.RenewLoan("L1", "U1", core.Date(2025, time.February, 11))
	require.NoError(t, err)

	// assert
	assert.True(t, overdueRenewal.IsGranted())
	assert.Equal(t, core.Date(2025, time.March, 10), overdueRenewal.NewDue)
	assert.Equal(t, core.DenialReasonMaxRenewals, secondRenewal.Reason)
}

func Test_System_RenewLoan_ClosedLoanIsAlwaysDenied(t *testing.T) {
	// arrange
	system := newSystem(t)
	addUser(t, system, "U1", "Jane Doe", "Student")
	addItem(t, system, core.KindBook, "B1", 1)
	loan, err := system.CheckoutItem("L1", "U1", "B1", core.Date(2025, time.January, 1))
	require.NoError(t, err)
	_, err = system.ReturnItem("L1", core.Date(2025, time.January, 2))
	require.NoError(t, err)

	for range 3 {
		// act
		decision, err := system.RenewLoan("L1", "U1", core.Date(2025, time.January, 3))

		// assert
		require.NoError(t, err)
		assert.Equal(t, core.DenialReasonLoanNotActive, decision.Reason)
		assert.Equal(t, 0, loan.Renewals())
		assert.Equal(t, core.Date(2025, time.January, 15), loan.Due())
	}
}

func Test_System_RenewLoan_UnknownReferences(t *testing.T) {
	system := newSystem(t)
	addUser(t, system, "U1", "Jane Doe", "Student")

	_, err := system.RenewLoan("L404", "U1", core.Date(2025, time.January, 3))
	assert.ErrorIs(t, err, core.ErrUnknownLoan)

	addItem(t, system, core.KindBook, "B1", 1)
	_, err = system.CheckoutItem("L1", "U1", "B1", core.Date(2025, time.January, 1))
	require.NoError(t, err)

	_, err = system.RenewLoan("L1", "U404", core.Date(2025, time.January, 3))
	assert.ErrorIs(t, err, core.ErrUnknownUser)
}

func Test_System_HoldLifecycle(t *testing.T) {
	// arrange
	system := newSystem(t)
	addUser(t, system, "U1", "Jane Doe", "Public")
	addItem(t, system, core.KindBook, "B1", 1)
	placedOn := core.Date(2025, time.April, 1)

	// act
	hold, err := system.PlaceHold("H1", "U1", "B1", placedOn, core.Date(2025, time.April, 8))
	require.NoError(t, err)

	notifyErr := system.NotifyHold("H1")
	newExpiry, extendErr := system.ExtendHold("H1", 2, core.Date(2025, time.April, 5))
	cancelErr := system.CancelHold("H1")

	// assert
	require.NoError(t, notifyErr)
	require.NoError(t, extendErr)
	require.NoError(t, cancelErr)
	assert.True(t, hold.Notified())
	assert.Equal(t, core.Date(2025, time.April, 10), newExpiry)
	assert.True(t, hold.Cancelled())
	assert.False(t, hold.Fulfilled())
	assert.ErrorIs(t, hold.Fulfill(), core.ErrInvalidState)
	assert.ErrorIs(t, system.NotifyHold("H1"), core.ErrInvalidState)
	assert.Equal(
		t,
		[]string{
			core.UserRegisteredEventType,
			core.ItemAddedToCatalogEventType,
			core.HoldPlacedEventType,
			core.HoldNotifiedEventType,
			core.HoldExtendedEventType,
			core.HoldCancelledEventType,
		},
		eventTypes(system.PendingEvents()),
	)
}

func Test_System_PlaceHold_Failures(t *testing.T) {
	system := newSystem(t)
	addUser(t, system, "U1", "Jane Doe", "Student")
	addItem(t, system, core.KindBook, "B1", 1)
	placedOn := core.Date(2025, time.April, 1)
	expiresOn := core.Date(2025, time.April, 8)

	_, err := system.PlaceHold("H1", "U1", "B1", placedOn, expiresOn)
	require.NoError(t, err)

	_, err = system.PlaceHold("H1", "U1", "B1", placedOn, expiresOn)
	assert.ErrorIs(t, err, core.ErrDuplicateHold)
	assert.ErrorIs(t, err, core.ErrConflict)

	_, err = system.PlaceHold("H2", "U404", "B1", placedOn, expiresOn)
	assert.ErrorIs(t, err, core.ErrUnknownUser)

	_, err = system.PlaceHold("H2", "U1", "B404", placedOn, expiresOn)
	assert.ErrorIs(t, err, core.ErrUnknownItem)

	_, err = system.PlaceHold("H2", "U1", "B1", expiresOn, placedOn)
	assert.ErrorIs(t, err, core.ErrExpiryBeforePlace)

	assert.Len(t, system.Holds(), 1)

	_, err = system.Hold("H2")
	assert.ErrorIs(t, err, core.ErrUnknownHold)
}

func Test_System_ActiveHoldsForItem(t *testing.T) {
	// arrange
	system := newSystem(t)
	addUser(t, system, "U1", "Jane Doe", "Student")
	addUser(t, system, "U2", "John Roe", "Student")
	addItem(t, system, core.KindBook, "B1", 1)
	addItem(t, system, core.KindBook, "B2", 1)
	placedOn := core.Date(2025, time.April, 1)

	h1, err := system.PlaceHold("H1", "U2", "B1", placedOn, core.Date(2025, time.April, 20))
	require.NoError(t, err)
	_, err = system.PlaceHold("H2", "U1", "B1", placedOn, core.Date(2025, time.April, 3))
	require.NoError(t, err)
	h3, err := system.PlaceHold("H3", "U1", "B1", placedOn, core.Date(2025, time.April, 30))
	require.NoError(t, err)
	_, err = system.PlaceHold("H4", "U1", "B2", placedOn, core.Date(2025, time.April, 30))
	require.NoError(t, err)
	_, err = system.PlaceHold("H5", "U2", "B1", placedOn, core.Date(2025, time.April, 30))
	require.NoError(t, err)
	require.NoError(t, system.CancelHold("H5"))

	// act
	active := system.ActiveHoldsForItem("B1", core.Date(2025, time.April, 10))

	// assert
	assert.Equal(t, []*core.Hold{h1, h3}, active)
}

func Test_System_PayFine(t *testing.T) {
	// arrange
	system := newSystem(t)
	user := addUser(t, system, "U1", "Jane Doe", "Student")
	require.NoError(t, user.AddFine(3))

	// act
	remaining, err := system.PayFine("U1", 1.25)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1.75, remaining)

	_, err = system.PayFine("U1", -1)
	assert.ErrorIs(t, err, core.ErrNegativePayment)

	_, err = system.PayFine("U404", 1)
	assert.ErrorIs(t, err, core.ErrUnknownUser)

	events := system.DrainEvents()
	paid, ok := events[len(events)-1].(core.FinePaid)
	require.True(t, ok)
	assert.Equal(t, 1.25, paid.Amount)
	assert.Equal(t, 1.75, paid.RemainingBalance)
	assert.Equal(t, fixedNow, paid.OccurredAt)
}

func Test_System_LoansForUser(t *testing.T) {
	// arrange
	system := newSystem(t)
	addUser(t, system, "U1", "Jane Doe", "Student")
	addUser(t, system, "U2", "John Roe", "Student")
	addItem(t, system, core.KindBook, "B1", 3)
	l1, err := system.CheckoutItem("L1", "U1", "B1", core.Date(2025, time.January, 1))
	require.NoError(t, err)
	_, err = system.CheckoutItem("L2", "U2", "B1", core.Date(2025, time.January, 1))
	require.NoError(t, err)
	l3, err := system.CheckoutItem("L3", "U1", "B1", core.Date(2025, time.January, 2))
	require.NoError(t, err)
	_, err = system.ReturnItem("L1", core.Date(2025, time.January, 3))
	require.NoError(t, err)

	// act
	loans, err := system.LoansForUser("U1")

	// assert
	require.NoError(t, err)
	assert.Equal(t, []*core.Loan{l1, l3}, loans)

	_, err = system.LoansForUser("U404")
	assert.ErrorIs(t, err, core.ErrUnknownUser)
}

func Test_System_AddUserAndItem_Conflicts(t *testing.T) {
	system := newSystem(t)
	addUser(t, system, "U1", "Jane Doe", "Student")
	addItem(t, system, core.KindBook, "B1", 1)

	duplicateUser, err := core.BuildUser("U1", "Someone Else", "Faculty")
	require.NoError(t, err)
	duplicateItem, err := core.BuildDVD("B1", "Other", nil, nil, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, system.AddUser(duplicateUser), core.ErrDuplicateUser)
	assert.ErrorIs(t, system.AddItem(duplicateItem), core.ErrDuplicateItem)
	assert.Len(t, system.Users(), 1)
	assert.Equal(t, 1, system.Catalog().ItemCount())

	user, err := system.User("U1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", user.Name())

	_, err = system.User("U2")
	assert.ErrorIs(t, err, core.ErrUnknownUser)
}

func Test_System_DrainEvents(t *testing.T) {
	// arrange
	system := newSystem(t)
	addUser(t, system, "U1", "Jane Doe", "Student")

	// act
	pending := system.PendingEvents()
	drained := system.DrainEvents()

	// assert
	assert.Equal(t, pending, drained)
	assert.Empty(t, system.PendingEvents())
	assert.Empty(t, system.DrainEvents())

	registered, ok := drained[0].(core.UserRegistered)
	require.True(t, ok)
	assert.Equal(t, "U1", registered.UserID)
	assert.Equal(t, "Student", registered.Role)
}

func Test_NewSystem_Validation(t *testing.T) {
	_, err := coordinator.NewSystem("  ")
	assert.ErrorIs(t, err, core.ErrEmptySystemName)

	_, err = coordinator.NewSystem("Central", coordinator.WithPolicy(coordinator.Policy{DailyFineRate: -0.1}))
	assert.ErrorIs(t, err, core.ErrNegativeDailyRate)

	_, err = coordinator.NewSystem("Central", coordinator.WithPolicy(coordinator.Policy{MaxRenewals: -1}))
	assert.ErrorIs(t, err, core.ErrNegativeRenewals)

	system, err := coordinator.NewSystem(" Central ")
	require.NoError(t, err)
	assert.Equal(t, "Central", system.Name())
	assert.Equal(t, coordinator.DefaultPolicy(), system.Policy())
}
