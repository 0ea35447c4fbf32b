package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"scorecast/domain"
	"scorecast/domain/event"
	apperrors "scorecast/errors"
)

func (s *Server) streamMatch(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	if _, err := s.service.Match(matchID); err != nil {
		s.writeError(w, err)
		return
	}
	s.stream(w, r, domain.MatchTopic(matchID))
}

func (s *Server) streamSport(w http.ResponseWriter, r *http.Request) {
	s.stream(w, r, domain.SportTopic(chi.URLParam(r, "key")))
}

func (s *Server) streamLiveMatches(w http.ResponseWriter, r *http.Request) {
	s.stream(w, r, domain.LiveMatchesTopic)
}

// stream is the SSE realization of join/disconnect: opening the response
// joins the topic, the client closing it drops the connection from the
// registry. Events are written in the order the sink received them; a
// client that falls behind its buffer loses events and is expected to
// refetch the REST snapshot (every event is a full-state replace anyway).
func (s *Server) stream(w http.ResponseWriter, r *http.Request, topic domain.Topic) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		errorJSON(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	connID := uuid.NewString()
	sink := newSSESink(s.connBufferSize)
	s.service.JoinTopic(connID, topic, sink)
	defer s.service.Disconnect(connID)

	s.log.Debug("Stream opened", "conn", connID, "topic", string(topic))

	for {
		select {
		case <-r.Context().Done():
			s.log.Debug("Stream closed", "conn", connID, "topic", string(topic))
			return
		case e := <-sink.events:
			if err := writeSSE(w, e); err != nil {
				// Client gone mid-write; the deferred disconnect cleans up.
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, e event.Event) error {
	data, err := json.Marshal(e.Payload())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Name(), data)
	return err
}

// sseSink buffers events between the dispatcher and one SSE response
// writer. Consume never blocks the dispatcher: a full buffer or cancelled
// context fails this one delivery and the viewer self-heals later.
type sseSink struct {
	events chan event.Event
}

func newSSESink(bufferSize int) *sseSink {
	return &sseSink{events: make(chan event.Event, bufferSize)}
}

// Consume is non-blocking by construction, so the dispatcher's per-sink
// timeout is never the limiting factor here.
func (s *sseSink) Consume(_ context.Context, e event.Event) error {
	select {
	case s.events <- e:
		return nil
	default:
		return apperrors.ErrSinkBufferFull
	}
}
