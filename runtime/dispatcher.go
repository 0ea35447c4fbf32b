package runtime

import (
	"context"
	"log/slog"
	"time"

	"scorecast/contract"
	"scorecast/domain"
	"scorecast/domain/event"
)

// Dispatcher fans match events out to the connections subscribed to their
// topics.
//
// It provides best-effort delivery: no retries, no durability, no ordering
// guarantee across topics or across connections. Within one topic and one
// connection, events arrive in publish order because a single goroutine
// drains the queue and every sink preserves its own order.
//
// Publishing enqueues and returns immediately, so the store's critical
// section is never held across subscriber I/O.
type Dispatcher struct {
	log         *slog.Logger
	registry    contract.IRegistry
	events      chan event.Event
	sinkTimeout time.Duration
}

func NewDispatcher(log *slog.Logger, registry contract.IRegistry, bufferSize int, sinkTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		log:         log,
		registry:    registry,
		events:      make(chan event.Event, bufferSize),
		sinkTimeout: sinkTimeout,
	}
}

func (d *Dispatcher) PublishMatchUpdate(snapshot domain.MatchState) {
	d.publish(event.MatchUpdated{Snapshot: snapshot})
}

func (d *Dispatcher) PublishSportUpdate(sportKey string, summary domain.MatchSummary) {
	d.publish(event.SportUpdated{Sport: sportKey, Summary: summary})
}

func (d *Dispatcher) PublishLiveMatchesUpdate(matches []domain.MatchSummary) {
	d.publish(event.LiveMatchesUpdated{Matches: matches})
}

func (d *Dispatcher) publish(e event.Event) {
	select {
	case d.events <- e:
	default:
		d.log.Warn("Dispatch queue full, dropping event", "event", e.Name())
	}
}

// Run drains the queue under supervision until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			d.log.Debug("Context done, stopping dispatcher")
			return nil
		case e := <-d.events:
			d.fanout(ctx, e)
		}
	}
}

// fanout sends one event to every subscriber of its topics. A failed or
// slow sink is logged and skipped; it never blocks delivery to the rest.
// Cleanup of dead connections is the transport's job via DropConnection.
func (d *Dispatcher) fanout(ctx context.Context, e event.Event) {
	for _, topic := range e.Topics() {
		for connID, sink := range d.registry.SinksFor(topic) {
			sinkCtx, cancel := context.WithTimeout(ctx, d.sinkTimeout)
			err := sink.Consume(sinkCtx, e)
			cancel()
			if err != nil {
				d.log.Warn("Failed to deliver event to subscriber",
					"event", e.Name(), "topic", string(topic), "conn", connID, "err", err)
			}
		}
	}
}
