package shell

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	logMsgJournaled     = "circulation events journaled"
	logMsgJournalFailed = "journaling circulation events failed"
	logAttrError        = "error"
	logAttrEventCount   = "event_count"
	logAttrCorrelation  = "correlation_id"
	logAttrDesk         = "desk"
)

// Recorder appends domain events to the journal. All events of one Record call share a
// correlation ID, carry the Recorder's desk and are appended atomically.
type Recorder struct {
	store   AppendsEvents
	desk    string
	logger  eventstore.Logger
	metrics eventstore.MetricsCollector
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithLogger sets the logger for the Recorder.
func WithLogger(logger eventstore.Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithDesk names the circulation desk whose events the Recorder journals.
func WithDesk(desk string) RecorderOption {
	return func(r *Recorder) {
		r.desk = desk
	}
}

// WithMetrics sets the metrics collector for the Recorder.
func WithMetrics(metrics eventstore.MetricsCollector) RecorderOption {
	return func(r *Recorder) {
		r.metrics = metrics
	}
}

// NewRecorder creates a Recorder appending to store.
func NewRecorder(store AppendsEvents, options ...RecorderOption) *Recorder {
	r := &Recorder{store: store}

	for _, option := range options {
		option(r)
	}

	r.desk = normalizeDesk(r.desk)

	return r
}

// Record converts the events and appends them in the given order.
// Recording no events is a no-op.
func (r *Recorder) Record(ctx context.Context, events ...core.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	correlationID := uuid.New()
	causationID := correlationID
	storableEvents := make(eventstore.StorableEvents, 0, len(events))

	for _, event := range events {
		messageID := uuid.New()

		storableEvent, err := StorableEventFrom(event, BuildEventMetadata(messageID, causationID, correlationID, r.desk))
		if err != nil {
			return err
		}

		storableEvents = append(storableEvents, storableEvent)
		causationID = messageID
	}

	start := time.Now()
	err := r.store.Append(ctx, storableEvents[0], storableEvents[1:]...)

	if r.metrics != nil {
		r.metrics.RecordDuration(MetricJournalAppendDuration, time.Since(start), nil)
	}

	if err != nil {
		if r.metrics != nil {
			r.metrics.IncrementCounter(MetricJournalAppendErrors, nil)
		}

		if r.logger != nil {
			r.logger.Error(
				logMsgJournalFailed,
				logAttrError, err.Error(),
				logAttrCorrelation, correlationID.String(),
				logAttrDesk, r.desk,
			)
		}

		return err
	}

	if r.metrics != nil {
		for _, event := range events {
			r.metrics.IncrementCounter(MetricJournalEventsTotal, map[string]string{labelEventType: event.IsEventType()})
		}
	}

	if r.logger != nil {
		r.logger.Info(
			logMsgJournaled,
			logAttrEventCount, len(events),
			logAttrCorrelation, correlationID.String(),
			logAttrDesk, r.desk,
		)
	}

	return nil
}

// RecordFrom drains the source and records its events.
// Drained events are lost if the append fails, the error carries them for a retry.
func (r *Recorder) RecordFrom(ctx context.Context, source EventSource) error {
	events := source.DrainEvents()

	if err := r.Record(ctx, events...); err != nil {
		return &UnrecordedEventsError{Events: events, Err: err}
	}

	return nil
}

// UnrecordedEventsError carries the drained events of a failed RecordFrom.
type UnrecordedEventsError struct {
	Events core.DomainEvents
	Err    error
}

func (e *UnrecordedEventsError) Error() string {
	return "unrecorded events: " + e.Err.Error()
}

func (e *UnrecordedEventsError) Unwrap() error {
	return e.Err
}

// AsUnrecordedEvents extracts the events of a failed RecordFrom from err.
func AsUnrecordedEvents(err error) (core.DomainEvents, bool) {
	var unrecorded *UnrecordedEventsError
	if errors.As(err, &unrecorded) {
		return unrecorded.Events, true
	}

	return nil, false
}
