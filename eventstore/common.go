package eventstore

import (
	"errors"
)

var (
	// ErrNilDatabaseConnection is returned when an engine is created without a database handle.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyEventsTableName is returned when the configured events table name is empty.
	ErrEmptyEventsTableName = errors.New("events table name must not be empty")

	ErrBuildingQueryFailed  = errors.New("building query failed")
	ErrQueryingEventsFailed = errors.New("querying events failed")
	ErrScanningDBRowFailed  = errors.New("scanning db row failed")
	ErrAppendingEventFailed = errors.New("appending the event failed")
	ErrCreatingTableFailed  = errors.New("creating the events table failed")
)

// DefaultEventsTableName is used when no table name is configured.
const DefaultEventsTableName = "events"
