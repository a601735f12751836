package config

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/sqliteengine"
)

// Journal is an opened journal engine plus the function releasing its resources.
type Journal struct {
	shell.EventStore
	closer func() error
}

// Close releases the underlying database handles.
func (j Journal) Close() error {
	if j.closer == nil {
		return nil
	}

	return j.closer()
}

// OpenJournal opens the engine selected by JournalDriver and makes sure its table exists.
func OpenJournal(ctx context.Context, cfg Config, logger eventstore.Logger) (Journal, error) {
	switch cfg.JournalDriver {
	case DriverSQLite:
		return openSQLiteJournal(ctx, cfg, logger)

	case DriverPostgres:
		return openPostgresJournal(ctx, cfg, logger)

	case DriverMemory, "":
		return Journal{EventStore: memoryengine.NewEventStore(memoryengine.WithLogger(logger))}, nil
	}

	return Journal{}, fmt.Errorf("%w: %s=%q", ErrInvalidConfigValue, EnvJournalDriver, cfg.JournalDriver)
}

func openSQLiteJournal(ctx context.Context, cfg Config, logger eventstore.Logger) (Journal, error) {
	store, err := sqliteengine.Open(
		cfg.SQLitePath,
		sqliteengine.WithTableName(cfg.JournalTable),
		sqliteengine.WithLogger(logger),
	)
	if err != nil {
		return Journal{}, err
	}

	if err = store.CreateTable(ctx); err != nil {
		_ = store.Close()
		return Journal{}, err
	}

	return Journal{EventStore: store, closer: store.Close}, nil
}

func openPostgresJournal(ctx context.Context, cfg Config, logger eventstore.Logger) (Journal, error) {
	options := []postgresengine.Option{
		postgresengine.WithTableName(cfg.JournalTable),
		postgresengine.WithLogger(logger),
	}

	var store postgresengine.EventStore
	var closer func() error

	switch cfg.PostgresAdapter {
	case AdapterSQL:
		db, err := OpenPostgresSQLDB(ctx, cfg.PostgresDSN)
		if err != nil {
			return Journal{}, err
		}

		closer = db.Close
		store, err = postgresengine.NewEventStoreFromSQLDB(db, options...)
		if err != nil {
			_ = closer()
			return Journal{}, err
		}

	case AdapterSQLX:
		db, err := OpenPostgresSQLX(ctx, cfg.PostgresDSN)
		if err != nil {
			return Journal{}, err
		}

		closer = db.Close
		store, err = postgresengine.NewEventStoreFromSQLX(db, options...)
		if err != nil {
			_ = closer()
			return Journal{}, err
		}

	default:
		pool, err := OpenPostgresPGXPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return Journal{}, err
		}

		closer = func() error { pool.Close(); return nil }
		store, err = postgresengine.NewEventStoreFromPGXPool(pool, options...)
		if err != nil {
			_ = closer()
			return Journal{}, err
		}
	}

	if err := store.CreateTable(ctx); err != nil {
		_ = closer()
		return Journal{}, err
	}

	return Journal{EventStore: store, closer: closer}, nil
}
