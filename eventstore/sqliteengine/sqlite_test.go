package sqliteengine_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/sqliteengine"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 123456789, time.UTC)

func openStore(t *testing.T, options ...sqliteengine.Option) *sqliteengine.EventStore {
	t.Helper()

	store, err := sqliteengine.Open(filepath.Join(t.TempDir(), "nested", "journal.db"), options...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.CreateTable(context.Background()))

	return store
}

func storable(t *testing.T, eventType string, offset time.Duration, payload string) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEvent(eventType, baseTime.Add(offset), []byte(payload), []byte(`{"CorrelationID":"c-1"}`))
	require.NoError(t, err)

	return event
}

func seed(t *testing.T, store *sqliteengine.EventStore) {
	t.Helper()

	err := store.Append(
		context.Background(),
		storable(t, "ItemCheckedOut", 0, `{"LoanID":"L-1","UserID":"U-1","ItemID":"I-1"}`),
		storable(t, "ItemCheckedOut", time.Hour, `{"LoanID":"L-2","UserID":"U-2","ItemID":"I-1"}`),
		storable(t, "ItemReturned", 2*time.Hour, `{"LoanID":"L-1","UserID":"U-1","DaysLate":3}`),
	)
	require.NoError(t, err)

	require.NoError(t, store.Append(context.Background(), storable(t, "FinePaid", 3*time.Hour, `{"UserID":"U-1","Amount":0.75}`)))
}

func eventTypesOf(events eventstore.StorableEvents) []string {
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.EventType)
	}

	return types
}

func Test_Open_CreatesParentDirectories(t *testing.T) {
	// arrange
	path := filepath.Join(t.TempDir(), "a", "b", "journal.db")

	// act
	store, err := sqliteengine.Open(path)

	// assert
	require.NoError(t, err)
	assert.NoError(t, store.CreateTable(context.Background()))
	assert.NoError(t, store.CreateTable(context.Background()), "creating the table twice must be idempotent")
	assert.NoError(t, store.Close())
}

func Test_NewEventStore_Validation(t *testing.T) {
	// arrange
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	// act
	_, nilErr := sqliteengine.NewEventStore(nil)
	_, tableErr := sqliteengine.NewEventStore(db, sqliteengine.WithTableName(""))
	store, okErr := sqliteengine.NewEventStore(db, sqliteengine.WithTableName("circulation_events"))

	// assert
	assert.ErrorIs(t, nilErr, eventstore.ErrNilDatabaseConnection)
	assert.ErrorIs(t, tableErr, eventstore.ErrEmptyEventsTableName)
	require.NoError(t, okErr)
	assert.NoError(t, store.CreateTable(context.Background()))
	assert.NoError(t, store.Close(), "closing a store on a borrowed db is a no-op")
}

func Test_Query_RoundTripsEvents(t *testing.T) {
	// arrange
	store := openStore(t)
	seed(t, store)

	// act
	events, err := store.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, []string{"ItemCheckedOut", "ItemCheckedOut", "ItemReturned", "FinePaid"}, eventTypesOf(events))
	assert.Equal(t, baseTime.Truncate(time.Microsecond), events[0].OccurredAt)
	assert.JSONEq(t, `{"LoanID":"L-1","UserID":"U-1","ItemID":"I-1"}`, string(events[0].PayloadJSON))
	assert.JSONEq(t, `{"CorrelationID":"c-1"}`, string(events[0].MetadataJSON))
}

func Test_Query_Filters(t *testing.T) {
	testCases := []struct {
		description string
		filter      eventstore.Filter
		expected    []string
	}{
		{
			description: "event types",
			filter:      eventstore.BuildEventFilter().Matching().AnyEventTypeOf("FinePaid", "ItemReturned").Finalize(),
			expected:    []string{"ItemReturned", "FinePaid"},
		},
		{
			description: "any predicate",
			filter: eventstore.BuildEventFilter().
				Matching().
				AnyPredicateOf(eventstore.P("LoanID", "L-2"), eventstore.P("Amount", "0.75")).
				Finalize(),
			expected: []string{"ItemCheckedOut"},
		},
		{
			description: "all predicates with event type",
			filter: eventstore.BuildEventFilter().
				Matching().
				AnyEventTypeOf("ItemCheckedOut", "ItemReturned").
				AndAllPredicatesOf(eventstore.P("UserID", "U-1"), eventstore.P("LoanID", "L-1")).
				Finalize(),
			expected: []string{"ItemCheckedOut", "ItemReturned"},
		},
		{
			description: "time range",
			filter: eventstore.BuildEventFilter().
				Matching().
				AnyPredicateOf(eventstore.P("UserID", "U-1")).
				OccurredFrom(baseTime.Add(time.Minute)).
				Finalize(),
			expected: []string{"ItemReturned", "FinePaid"},
		},
		{
			description: "inclusive upper boundary",
			filter:      eventstore.BuildEventFilter().OccurredUntil(baseTime.Add(time.Hour)).Finalize(),
			expected:    []string{"ItemCheckedOut", "ItemCheckedOut"},
		},
	}

	store := openStore(t)
	seed(t, store)

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			events, err := store.Query(context.Background(), tc.filter)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, eventTypesOf(events))
		})
	}
}

func Test_Query_FailsWithoutTable(t *testing.T) {
	// arrange
	store, err := sqliteengine.Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// act
	_, queryErr := store.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())
	appendErr := store.Append(context.Background(), storable(t, "FinePaid", 0, `{}`))

	// assert
	assert.ErrorIs(t, queryErr, eventstore.ErrQueryingEventsFailed)
	assert.ErrorIs(t, appendErr, eventstore.ErrAppendingEventFailed)
}
