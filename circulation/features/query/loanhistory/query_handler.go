package loanhistory

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	logMsgQueryFailed    = "query failed"
	logMsgQuerySucceeded = "query succeeded"
	logAttrQueryType     = "query_type"
	logAttrUserID        = "user_id"
	logAttrError         = "error"
	logAttrDurationMS    = "duration_ms"
)

// QueryHandler orchestrates the complete query processing workflow.
// It handles infrastructure concerns like journal interactions and logging,
// and delegates projection logic to the pure Project function.
type QueryHandler struct {
	eventStore shell.QueriesEvents
	logger     eventstore.Logger
}

// Option defines a functional option for configuring QueryHandler.
type Option func(*QueryHandler)

// WithLogging sets the logger for the QueryHandler.
func WithLogging(logger eventstore.Logger) Option {
	return func(h *QueryHandler) {
		h.logger = logger
	}
}

// NewQueryHandler creates a new QueryHandler with the provided journal dependency and options.
func NewQueryHandler(eventStore shell.QueriesEvents, opts ...Option) QueryHandler {
	h := QueryHandler{
		eventStore: eventStore,
	}

	for _, opt := range opts {
		opt(&h)
	}

	return h
}

// Handle executes the complete query processing workflow: Query -> Unmarshal -> Project -> Assign desks.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LoanHistory, error) {
	start := time.Now()

	if query.UserID == "" {
		return LoanHistory{}, core.ErrEmptyUserID
	}

	storableEvents, err := h.eventStore.Query(ctx, BuildEventFilter(query.UserID))
	if err != nil {
		h.logError(query, err)
		return LoanHistory{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		h.logError(query, err)
		return LoanHistory{}, err
	}

	result, err := assignDesks(Project(history, query), history, storableEvents)
	if err != nil {
		h.logError(query, err)
		return LoanHistory{}, err
	}

	if h.logger != nil {
		h.logger.Info(
			logMsgQuerySucceeded,
			logAttrQueryType, queryType,
			logAttrUserID, query.UserID,
			logAttrDurationMS, time.Since(start).Milliseconds(),
		)
	}

	return result, nil
}

func (h QueryHandler) logError(query Query, err error) {
	if h.logger != nil {
		h.logger.Error(logMsgQueryFailed, logAttrQueryType, queryType, logAttrUserID, query.UserID, logAttrError, err.Error())
	}
}

// assignDesks reads the journaling desk of each checkout and return from the metadata.
// history must be the unmarshalled storableEvents, in the same order.
func assignDesks(result LoanHistory, history core.DomainEvents, storableEvents eventstore.StorableEvents) (LoanHistory, error) {
	positions := make(map[core.LoanIDString]int, len(result.Loans))
	for i, entry := range result.Loans {
		positions[entry.LoanID] = i
	}

	for i, event := range history {
		var loanID core.LoanIDString
		var returned bool

		switch e := event.(type) {
		case core.ItemCheckedOut:
			loanID = e.LoanID
		case core.ItemReturned:
			loanID, returned = e.LoanID, true
		default:
			continue
		}

		pos, ok := positions[loanID]
		if !ok {
			continue
		}

		metadata, err := shell.EventMetadataFrom(storableEvents[i])
		if err != nil {
			return LoanHistory{}, err
		}

		if returned {
			result.Loans[pos].ReturnDesk = metadata.Desk
		} else {
			result.Loans[pos].CheckoutDesk = metadata.Desk
		}
	}

	return result, nil
}
