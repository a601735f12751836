package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/internal/adapters"
)

const (
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgCreateTableFailed        = "failed to create events table"
	logMsgQueryCompleted           = "query completed"
	logMsgEventsAppended           = "events appended"
	logMsgTableCreated             = "events table created"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "eventstore operation: "
	logAttrError                   = "error"
	logAttrQuery                   = "query"
	logAttrTable                   = "table"
	logAttrEventType               = "event_type"
	logAttrEventCount              = "event_count"
	logAttrDurationMS              = "duration_ms"
	logActionQuery                 = "query"
	logActionAppend                = "append"
	logActionCreateTable           = "create table"
	colEventType                   = "event_type"
	colOccurredAt                  = "occurred_at"
	colPayload                     = "payload"
	colMetadata                    = "metadata"
	colSequenceNumber              = "sequence_number"
	dialectPostgres                = "postgres"
	castJsonb                      = "?::jsonb"
	payloadContains                = colPayload + " @> ?::jsonb"
)

type sqlQueryString = string

// EventStore is the PostgreSQL journal. It is safe for concurrent use, as far as the
// underlying connection pool is.
type EventStore struct {
	db             adapters.DBAdapter
	eventTableName string
	logger         eventstore.Logger
}

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore) error

// WithTableName sets the table name for the EventStore.
func WithTableName(tableName string) Option {
	return func(es *EventStore) error {
		if strings.TrimSpace(tableName) == "" {
			return eventstore.ErrEmptyEventsTableName
		}

		es.eventTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the EventStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Event counts and durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.logger = logger
		return nil
	}
}

type queryResultRow struct {
	eventType  string
	payload    []byte
	metadata   []byte
	occurredAt time.Time
}

// NewEventStoreFromPGXPool creates a new EventStore using a pgx Pool with optional configuration.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromSQLDB creates a new EventStore using a sql.DB with optional configuration.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLX creates a new EventStore using a sqlx.DB with optional configuration.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (EventStore, error) {
	es := EventStore{
		db:             db,
		eventTableName: eventstore.DefaultEventsTableName,
	}

	for _, option := range options {
		if err := option(&es); err != nil {
			return EventStore{}, err
		}
	}

	return es, nil
}

// CreateTable creates the events table and its indexes if they do not exist yet.
func (es EventStore) CreateTable(ctx context.Context) error {
	table := quoteIdentifier(es.eventTableName)
	index := quoteIdentifier(es.eventTableName + "_payload_idx")

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s BIGSERIAL PRIMARY KEY,
	%s TEXT NOT NULL,
	%s TIMESTAMP WITH TIME ZONE NOT NULL,
	%s JSONB NOT NULL,
	%s JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS %s ON %s USING gin (%s jsonb_path_ops);`,
		table, colSequenceNumber, colEventType, colOccurredAt, colPayload, colMetadata,
		index, table, colPayload,
	)

	start := time.Now()
	_, execErr := es.db.Exec(ctx, ddl)
	es.logQueryWithDuration(ddl, logActionCreateTable, time.Since(start))

	if execErr != nil {
		if es.logger != nil {
			es.logger.Error(logMsgCreateTableFailed, logAttrError, execErr.Error(), logAttrTable, es.eventTableName)
		}

		return errors.Join(eventstore.ErrCreatingTableFailed, execErr)
	}

	es.logOperation(logMsgTableCreated, logAttrTable, es.eventTableName)

	return nil
}

// Query retrieves the events matching the eventstore.Filter in the order they were appended.
func (es EventStore) Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEvents, error) {
	var empty eventstore.StorableEvents

	sqlQuery, buildQueryErr := es.buildSelectQuery(filter)
	if buildQueryErr != nil {
		if es.logger != nil {
			es.logger.Error(logMsgBuildSelectQueryFailed, logAttrError, buildQueryErr.Error())
		}

		return empty, buildQueryErr
	}

	start := time.Now()
	rows, queryErr := es.db.Query(ctx, sqlQuery)
	es.logQueryWithDuration(sqlQuery, logActionQuery, time.Since(start))

	if queryErr != nil {
		if es.logger != nil {
			es.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		return empty, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}
	defer es.closeRows(rows)

	eventStream, scanErr := es.processQueryResults(rows)
	if scanErr != nil {
		return empty, scanErr
	}

	es.logOperation(
		logMsgQueryCompleted,
		logAttrEventCount, len(eventStream),
		logAttrDurationMS, es.durationToMilliseconds(time.Since(start)),
	)

	return eventStream, nil
}

// closeRows safely closes database rows and logs any errors.
func (es EventStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if es.logger != nil {
			es.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

func (es EventStore) processQueryResults(rows adapters.DBRows) (eventstore.StorableEvents, error) {
	var empty eventstore.StorableEvents
	result := queryResultRow{}
	eventStream := make(eventstore.StorableEvents, 0)

	for rows.Next() {
		rowScanErr := rows.Scan(&result.eventType, &result.occurredAt, &result.payload, &result.metadata)
		if rowScanErr != nil {
			if es.logger != nil {
				es.logger.Error(logMsgScanRowFailed, logAttrError, rowScanErr.Error())
			}

			return empty, errors.Join(eventstore.ErrScanningDBRowFailed, rowScanErr)
		}

		event, buildStorableErr := eventstore.BuildStorableEvent(result.eventType, result.occurredAt, result.payload, result.metadata)
		if buildStorableErr != nil {
			if es.logger != nil {
				es.logger.Error(logMsgBuildStorableEventFailed, logAttrError, buildStorableErr.Error(), logAttrEventType, result.eventType)
			}

			return empty, errors.Join(eventstore.ErrScanningDBRowFailed, buildStorableErr)
		}

		eventStream = append(eventStream, event)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return empty, errors.Join(eventstore.ErrQueryingEventsFailed, rowsErr)
	}

	return eventStream, nil
}

// Append appends one or multiple eventstore.StorableEvent(s) atomically, in the given order.
func (es EventStore) Append(
	ctx context.Context,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := eventstore.StorableEvents{event}
	allEvents = append(allEvents, additionalEvents...)

	sqlQuery, buildQueryErr := es.buildInsertQuery(allEvents)
	if buildQueryErr != nil {
		if es.logger != nil {
			es.logger.Error(logMsgBuildInsertQueryFailed, logAttrError, buildQueryErr.Error(), logAttrEventCount, len(allEvents))
		}

		return buildQueryErr
	}

	start := time.Now()
	_, execErr := es.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	es.logQueryWithDuration(sqlQuery, logActionAppend, duration)

	if execErr != nil {
		if es.logger != nil {
			es.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	es.logOperation(
		logMsgEventsAppended,
		logAttrEventCount, len(allEvents),
		logAttrDurationMS, es.durationToMilliseconds(duration),
	)

	return nil
}

func (es EventStore) buildSelectQuery(filter eventstore.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata).
		Order(goqu.I(colSequenceNumber).Asc())

	whereExpressions, buildErr := es.buildWhereExpressions(filter)
	if buildErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, buildErr)
	}

	if len(whereExpressions) > 0 {
		selectStmt = selectStmt.Where(whereExpressions...)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es EventStore) buildInsertQuery(events eventstore.StorableEvents) (sqlQueryString, error) {
	rows := make([]any, 0, len(events))

	for _, event := range events {
		rows = append(rows, goqu.Record{
			colEventType:  event.EventType,
			colOccurredAt: event.OccurredAt,
			colPayload:    goqu.L(castJsonb, string(event.PayloadJSON)),
			colMetadata:   goqu.L(castJsonb, string(event.MetadataJSON)),
		})
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(es.eventTableName).
		Rows(rows...)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es EventStore) buildWhereExpressions(filter eventstore.Filter) ([]exp.Expression, error) {
	whereExpressions := make([]exp.Expression, 0)
	itemsExpressions := make([]exp.Expression, 0)
	matchesAnyItem := false

	for _, item := range filter.Items() {
		itemExpressions := make([]exp.Expression, 0)
		eventTypeExpressions := make([]exp.Expression, 0)
		predicateExpressions := make([]exp.Expression, 0)

		for _, eventType := range item.EventTypes() {
			eventTypeExpressions = append(eventTypeExpressions, goqu.Ex{colEventType: eventType})
		}

		if len(eventTypeExpressions) > 0 {
			// eventTypes must always be filtered with OR ;-)
			itemExpressions = append(itemExpressions, goqu.Or(eventTypeExpressions...))
		}

		for _, predicate := range item.Predicates() {
			containment, marshalErr := jsoniter.ConfigFastest.MarshalToString(
				map[string]string{predicate.Key(): predicate.Val()},
			)
			if marshalErr != nil {
				return nil, marshalErr
			}

			predicateExpressions = append(predicateExpressions, goqu.L(payloadContains, containment))
		}

		if len(predicateExpressions) > 0 {
			if item.AllPredicatesMustMatch() {
				itemExpressions = append(itemExpressions, goqu.And(predicateExpressions...))
			} else {
				itemExpressions = append(itemExpressions, goqu.Or(predicateExpressions...))
			}
		}

		if len(itemExpressions) == 0 {
			matchesAnyItem = true
			break
		}

		itemsExpressions = append(itemsExpressions, goqu.And(itemExpressions...))
	}

	if !matchesAnyItem && len(itemsExpressions) > 0 {
		whereExpressions = append(whereExpressions, goqu.Or(itemsExpressions...))
	}

	if !filter.OccurredFrom().IsZero() {
		whereExpressions = append(whereExpressions, goqu.C(colOccurredAt).Gte(filter.OccurredFrom().UTC()))
	}

	if !filter.OccurredUntil().IsZero() {
		whereExpressions = append(whereExpressions, goqu.C(colOccurredAt).Lte(filter.OccurredUntil().UTC()))
	}

	return whereExpressions, nil
}

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (es EventStore) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if es.logger != nil {
		es.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, es.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (es EventStore) logOperation(action string, args ...any) {
	if es.logger != nil {
		es.logger.Info(logMsgOperation+action, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (es EventStore) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
