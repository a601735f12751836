package sqliteengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/internal/adapters"
)

const (
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgDBExecFailed           = "database execution failed during event append"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgCreateTableFailed      = "failed to create events table"
	logMsgQueryCompleted         = "eventstore operation: query completed"
	logMsgEventsAppended         = "eventstore operation: events appended"
	logMsgSQLExecuted            = "executed sql"
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrTable                 = "table"
	logAttrEventCount            = "event_count"
	colEventType                 = "event_type"
	colOccurredAt                = "occurred_at"
	colPayload                   = "payload"
	colMetadata                  = "metadata"
	colSequenceNumber            = "sequence_number"
	dialectSQLite                = "sqlite3"
	driverName                   = "sqlite"
	jsonExtractEquals            = "json_extract(" + colPayload + ", ?) = ?"
	occurredAtLayout             = "2006-01-02T15:04:05.000000Z"
)

// EventStore is the SQLite journal.
type EventStore struct {
	db             adapters.DBAdapter
	closer         func() error
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
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.logger = logger
		return nil
	}
}

// NewEventStore creates a new EventStore on an already opened sqlite database.
// Closing the database stays the caller's responsibility.
func NewEventStore(db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	es := &EventStore{
		db:             adapters.NewSQLAdapter(db),
		closer:         func() error { return nil },
		eventTableName: eventstore.DefaultEventsTableName,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Open opens (or creates) the sqlite database file at path and returns an EventStore owning it.
// Missing parent directories are created.
func Open(path string, options ...Option) (*EventStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// one writer at a time, sqlite serializes writes anyway
	db.SetMaxOpenConns(1)

	es, err := NewEventStore(db, options...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	es.closer = db.Close

	return es, nil
}

// Close releases the database if it was opened by Open.
func (es *EventStore) Close() error {
	return es.closer()
}

// CreateTable creates the events table and its type index if they do not exist yet.
func (es *EventStore) CreateTable(ctx context.Context) error {
	table := quoteIdentifier(es.eventTableName)

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s INTEGER PRIMARY KEY AUTOINCREMENT,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL
)`, table, colSequenceNumber, colEventType, colOccurredAt, colPayload, colMetadata),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s)`,
			quoteIdentifier(es.eventTableName+"_event_type_idx"), table, colEventType),
	}

	for _, statement := range statements {
		if _, err := es.db.Exec(ctx, statement); err != nil {
			if es.logger != nil {
				es.logger.Error(logMsgCreateTableFailed, logAttrError, err.Error(), logAttrTable, es.eventTableName)
			}

			return errors.Join(eventstore.ErrCreatingTableFailed, err)
		}
	}

	return nil
}

// Append appends one or multiple eventstore.StorableEvent(s) atomically, in the given order.
func (es *EventStore) Append(
	ctx context.Context,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)

	sqlQuery, buildErr := es.buildInsertQuery(allEvents)
	if buildErr != nil {
		if es.logger != nil {
			es.logger.Error(logMsgBuildInsertQueryFailed, logAttrError, buildErr.Error())
		}

		return buildErr
	}

	es.logQuery(sqlQuery)

	if _, execErr := es.db.Exec(ctx, sqlQuery); execErr != nil {
		if es.logger != nil {
			es.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	if es.logger != nil {
		es.logger.Info(logMsgEventsAppended, logAttrEventCount, len(allEvents))
	}

	return nil
}

// Query retrieves the events matching the eventstore.Filter in the order they were appended.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEvents, error) {
	sqlQuery, buildErr := es.buildSelectQuery(filter)
	if buildErr != nil {
		if es.logger != nil {
			es.logger.Error(logMsgBuildSelectQueryFailed, logAttrError, buildErr.Error())
		}

		return nil, buildErr
	}

	es.logQuery(sqlQuery)

	rows, queryErr := es.db.Query(ctx, sqlQuery)
	if queryErr != nil {
		if es.logger != nil {
			es.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		return nil, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil && es.logger != nil {
			es.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}()

	events := make(eventstore.StorableEvents, 0)

	for rows.Next() {
		var eventType, occurredAt, payload, metadata string

		if err := rows.Scan(&eventType, &occurredAt, &payload, &metadata); err != nil {
			return nil, es.scanFailed(err)
		}

		parsed, parseErr := time.Parse(occurredAtLayout, occurredAt)
		if parseErr != nil {
			return nil, es.scanFailed(parseErr)
		}

		event, storableErr := eventstore.BuildStorableEvent(eventType, parsed, []byte(payload), []byte(metadata))
		if storableErr != nil {
			return nil, es.scanFailed(storableErr)
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	if es.logger != nil {
		es.logger.Info(logMsgQueryCompleted, logAttrEventCount, len(events))
	}

	return events, nil
}

func (es *EventStore) scanFailed(err error) error {
	if es.logger != nil {
		es.logger.Error(logMsgScanRowFailed, logAttrError, err.Error())
	}

	return errors.Join(eventstore.ErrScanningDBRowFailed, err)
}

func (es *EventStore) buildInsertQuery(events eventstore.StorableEvents) (string, error) {
	rows := make([]any, 0, len(events))

	for _, event := range events {
		rows = append(rows, goqu.Record{
			colEventType:  event.EventType,
			colOccurredAt: formatOccurredAt(event.OccurredAt),
			colPayload:    string(event.PayloadJSON),
			colMetadata:   string(event.MetadataJSON),
		})
	}

	sqlQuery, _, err := goqu.Dialect(dialectSQLite).Insert(es.eventTableName).Rows(rows...).ToSQL()
	if err != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

func (es *EventStore) buildSelectQuery(filter eventstore.Filter) (string, error) {
	selectStmt := goqu.Dialect(dialectSQLite).
		From(es.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata).
		Order(goqu.I(colSequenceNumber).Asc())

	if where := buildWhereExpressions(filter); len(where) > 0 {
		selectStmt = selectStmt.Where(where...)
	}

	sqlQuery, _, err := selectStmt.ToSQL()
	if err != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

func buildWhereExpressions(filter eventstore.Filter) []exp.Expression {
	whereExpressions := make([]exp.Expression, 0)
	itemsExpressions := make([]exp.Expression, 0)

	for _, item := range filter.Items() {
		itemExpressions := make([]exp.Expression, 0)

		if len(item.EventTypes()) > 0 {
			itemExpressions = append(itemExpressions, goqu.C(colEventType).In(item.EventTypes()))
		}

		predicateExpressions := make([]exp.Expression, 0, len(item.Predicates()))
		for _, predicate := range item.Predicates() {
			predicateExpressions = append(predicateExpressions, goqu.L(jsonExtractEquals, jsonPath(predicate.Key()), predicate.Val()))
		}

		if len(predicateExpressions) > 0 {
			if item.AllPredicatesMustMatch() {
				itemExpressions = append(itemExpressions, goqu.And(predicateExpressions...))
			} else {
				itemExpressions = append(itemExpressions, goqu.Or(predicateExpressions...))
			}
		}

		if len(itemExpressions) == 0 {
			// an empty item matches every event
			itemsExpressions = nil
			break
		}

		itemsExpressions = append(itemsExpressions, goqu.And(itemExpressions...))
	}

	if len(itemsExpressions) > 0 {
		whereExpressions = append(whereExpressions, goqu.Or(itemsExpressions...))
	}

	if !filter.OccurredFrom().IsZero() {
		whereExpressions = append(whereExpressions, goqu.C(colOccurredAt).Gte(formatOccurredAt(filter.OccurredFrom())))
	}

	if !filter.OccurredUntil().IsZero() {
		whereExpressions = append(whereExpressions, goqu.C(colOccurredAt).Lte(formatOccurredAt(filter.OccurredUntil())))
	}

	return whereExpressions
}

func (es *EventStore) logQuery(sqlQuery string) {
	if es.logger != nil {
		es.logger.Debug(logMsgSQLExecuted, logAttrQuery, sqlQuery)
	}
}

func formatOccurredAt(t time.Time) string {
	return t.UTC().Truncate(time.Microsecond).Format(occurredAtLayout)
}

func jsonPath(key string) string {
	return `$."` + strings.ReplaceAll(key, `"`, `\"`) + `"`
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
