package ledger

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/spaceship-staking/app"
	"github.com/dan13ram/spaceship-staking/models"
)

// EventSink receives the events the ledger surfaces to observers.
type EventSink interface {
	Emit(ctx context.Context, event models.Event) error
}

type LogEventSink struct{}

func (LogEventSink) Emit(ctx context.Context, event models.Event) error {
	log.WithFields(log.Fields{
		"event":      event.Name,
		"mission_id": event.MissionID,
		"user":       event.User,
	}).Info("[LEDGER] Event emitted")
	return nil
}

// DatabaseEventSink appends events to the events collection.
type DatabaseEventSink struct {
	db app.Database
}

func NewDatabaseEventSink(db app.Database) *DatabaseEventSink {
	return &DatabaseEventSink{db: db}
}

func (s *DatabaseEventSink) Emit(ctx context.Context, event models.Event) error {
	return s.db.InsertOne(models.CollectionEvents, event)
}

// MultiEventSink forwards every event to all sinks and returns the first error.
type MultiEventSink []EventSink

func (m MultiEventSink) Emit(ctx context.Context, event models.Event) error {
	var first error
	for _, sink := range m {
		if err := sink.Emit(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}
