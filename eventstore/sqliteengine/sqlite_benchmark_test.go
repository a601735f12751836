package sqliteengine_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/sqliteengine"
)

func Benchmark_Append_And_Query_OneUser(b *testing.B) {
	// setup
	ctx := context.Background()
	store, err := sqliteengine.Open(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, err)
	defer func() { _ = store.Close() }()
	require.NoError(b, store.CreateTable(ctx))

	fakeClock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	filter := eventstore.BuildEventFilter().Matching().AnyPredicateOf(eventstore.P("UserID", "U-7")).Finalize()

	// act
	b.Run("append 1 event", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fakeClock = fakeClock.Add(time.Second)
			payload := fmt.Sprintf(`{"LoanID":"L-%d","UserID":"U-%d"}`, i, i%10)
			event, buildErr := eventstore.BuildStorableEventWithEmptyMetadata("ItemCheckedOut", fakeClock, []byte(payload))
			require.NoError(b, buildErr)

			assert.NoError(b, store.Append(ctx, event))
		}
	})

	b.Run("query one user", func(b *testing.B) {
		var queryTime time.Duration

		for i := 0; i < b.N; i++ {
			start := time.Now()
			_, queryErr := store.Query(ctx, filter)
			queryTime += time.Since(start)

			assert.NoError(b, queryErr)
		}

		b.ReportMetric(float64(queryTime.Microseconds())/float64(b.N), "µs/query-op")
	})
}
