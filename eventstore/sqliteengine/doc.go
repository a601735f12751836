// Package sqliteengine provides a SQLite implementation of the circulation journal
// on top of the pure-Go modernc.org/sqlite driver.
//
// Events are appended atomically with a single multi-row INSERT. Payload predicates of
// a Filter are translated to json_extract comparisons, occurred_at is stored as
// fixed-width UTC text so time boundaries compare lexically.
//
//	store, _ := sqliteengine.Open("data/circulation.db")
//	defer store.Close()
//
//	_ = store.CreateTable(ctx)
//	err := store.Append(ctx, newEvent)
//	events, _ := store.Query(ctx, filter)
package sqliteengine
