package coordinator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/coordinator"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

var fixedNow = time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)

func newSystem(t *testing.T, options ...coordinator.Option) *coordinator.System {
	t.Helper()

	options = append([]coordinator.Option{coordinator.WithClock(func() time.Time { return fixedNow })}, options...)
	system, err := coordinator.NewSystem("Central Library", options...)
	require.NoError(t, err)

	return system
}

func addUser(t *testing.T, system *coordinator.System, userID, name, role string) *core.User {
	t.Helper()

	user, err := core.BuildUser(userID, name, role)
	require.NoError(t, err)
	require.NoError(t, system.AddUser(user))

	return user
}

func addItem(t *testing.T, system *coordinator.System, kind core.ItemKind, itemID string, copies int) *core.Item {
	t.Helper()

	item, err := core.BuildItem(kind, itemID, "Title of "+itemID, []string{"some author"}, nil, copies)
	require.NoError(t, err)
	require.NoError(t, system.AddItem(item))

	return item
}

func eventTypes(events core.DomainEvents) []string {
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.IsEventType())
	}

	return types
}
