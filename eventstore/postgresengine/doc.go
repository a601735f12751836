// Package postgresengine provides a PostgreSQL implementation of the circulation journal.
//
// It supports multiple database adapters (pgx, sql.DB, sqlx) and appends one or
// multiple events atomically with a single INSERT statement. Payload predicates of
// a Filter are translated to JSONB containment.
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(db)
//
//	// With a custom table and logging
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		db,
//		postgresengine.WithTableName("circulation_events"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//
//	_ = store.CreateTable(ctx)
//	err := store.Append(ctx, newEvent)
//	events, _ := store.Query(ctx, filter)
package postgresengine
