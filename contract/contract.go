package contract

import (
	"context"
	"reflect"

	"scorecast/domain"
	"scorecast/domain/event"
)

// Worker is a supervised long-running task. It doesn't protect itself;
// panic recovery and restarts are the supervisor's job.
type Worker interface {
	Run(ctx context.Context) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Stop()
}

// GetWorkerName resolves a worker's type name for supervision logs,
// avoiding a manual naming method on every worker.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is one viewer connection's inbound side. Consume must respect
// the context deadline and return promptly: a slow or dead sink is dropped
// for that event, never waited on.
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

// IRegistry tracks which connections subscribed to which topics.
type IRegistry interface {
	Join(connID string, topic domain.Topic, sink EventSink)
	Leave(connID string, topic domain.Topic)
	DropConnection(connID string)
	SinksFor(topic domain.Topic) map[string]EventSink
}

// IDispatcher turns match mutations into topic-addressed broadcasts.
// All three publishes are best effort: once the store has committed, a
// failed or dropped send is logged and the subscriber self-heals on its
// next snapshot fetch.
type IDispatcher interface {
	PublishMatchUpdate(snapshot domain.MatchState)
	PublishSportUpdate(sportKey string, summary domain.MatchSummary)
	PublishLiveMatchesUpdate(matches []domain.MatchSummary)
}
