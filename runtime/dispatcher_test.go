package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scorecast/domain"
	"scorecast/domain/event"
)

type recordingSink struct {
	mu     sync.Mutex
	events []event.Event
	fail   bool
}

func (s *recordingSink) Consume(_ context.Context, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return fmt.Errorf("connection already closed")
	}
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSink) received() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]event.Event, len(s.events))
	copy(out, s.events)
	return out
}

func liveMatch(id string) domain.MatchState {
	return domain.MatchState{ID: id, Sport: "cricket", Status: domain.StatusLive}
}

func TestDispatcher_TopicIsolation(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	dispatcher := NewDispatcher(slog.Default(), registry, 16, time.Second)

	// Given a viewer subscribed only to match A
	sinkA := &recordingSink{}
	registry.Join("conn-a", domain.MatchTopic("A"), sinkA)

	// When updates for both matches are dispatched
	dispatcher.PublishMatchUpdate(liveMatch("A"))
	dispatcher.PublishMatchUpdate(liveMatch("B"))
	dispatcher.drainForTest(2)

	// Then the viewer only ever sees match A
	events := sinkA.received()
	req.Len(events, 1)
	update, ok := events[0].(event.MatchUpdated)
	req.True(ok)
	req.Equal("A", update.Snapshot.ID)
}

func TestDispatcher_FailedSinkDoesNotBlockOthers(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	dispatcher := NewDispatcher(slog.Default(), registry, 16, time.Second)

	healthy := &recordingSink{}
	registry.Join("dead", domain.MatchTopic("A"), &recordingSink{fail: true})
	registry.Join("healthy", domain.MatchTopic("A"), healthy)

	dispatcher.PublishMatchUpdate(liveMatch("A"))
	dispatcher.drainForTest(1)

	req.Len(healthy.received(), 1)
}

func TestDispatcher_PerConnectionFIFO(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	dispatcher := NewDispatcher(slog.Default(), registry, 16, time.Second)

	sink := &recordingSink{}
	registry.Join("conn", domain.LiveMatchesTopic, sink)

	// When several live-list updates are published in order
	for i := 0; i < 5; i++ {
		dispatcher.PublishLiveMatchesUpdate([]domain.MatchSummary{{ID: fmt.Sprintf("m%d", i)}})
	}
	dispatcher.drainForTest(5)

	// Then the connection observes them in emission order
	events := sink.received()
	req.Len(events, 5)
	for i, e := range events {
		update, ok := e.(event.LiveMatchesUpdated)
		req.True(ok)
		req.Equal(fmt.Sprintf("m%d", i), update.Matches[0].ID)
	}
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	dispatcher := NewDispatcher(slog.Default(), registry, 1, time.Second)

	// With no drain running, the second publish must drop, not block
	done := make(chan struct{})
	go func() {
		dispatcher.PublishMatchUpdate(liveMatch("A"))
		dispatcher.PublishMatchUpdate(liveMatch("A"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("publish blocked on a full queue")
	}
}

func TestDispatcher_RunStopsOnContextCancel(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	dispatcher := NewDispatcher(slog.Default(), registry, 1, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- dispatcher.Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("dispatcher did not stop on context cancel")
	}
}

// drainForTest fans out exactly n queued events on the caller's goroutine,
// standing in for the supervised Run loop.
func (d *Dispatcher) drainForTest(n int) {
	for i := 0; i < n; i++ {
		d.fanout(context.Background(), <-d.events)
	}
}
