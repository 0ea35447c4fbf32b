package services

import (
	"time"

	"scorecast/auth"
	"scorecast/contract"
	"scorecast/domain"
	apperrors "scorecast/errors"
	"scorecast/projection"
	"scorecast/store"
)

type IScoringService interface {
	ScheduleMatch(in MatchInput, claims *auth.CustomClaims) (domain.MatchState, error)
	SubmitDelivery(matchID string, in DeliveryInput, claims *auth.CustomClaims) (domain.MatchState, error)
	SubmitStatusChange(matchID string, newStatus domain.Status, claims *auth.CustomClaims) (domain.MatchState, error)

	Match(matchID string) (domain.MatchState, error)
	Commentary(matchID string, since *time.Time) ([]domain.Delivery, error)
	LiveMatches() []domain.MatchSummary

	JoinTopic(connID string, topic domain.Topic, sink contract.EventSink)
	LeaveTopic(connID string, topic domain.Topic)
	Disconnect(connID string)
}

// ScoringService is the single entry point scorer clients drive. Every
// mutation follows the same strict order: authorize, validate, commit to
// the store, then broadcast. Errors up to the commit are synchronous and
// leave no trace; after the commit the write has succeeded no matter what
// the broadcast does.
type ScoringService struct {
	store      *store.MatchStore
	dispatcher contract.IDispatcher
	registry   contract.IRegistry
}

func NewScoringService(store *store.MatchStore, dispatcher contract.IDispatcher, registry contract.IRegistry) *ScoringService {
	return &ScoringService{store: store, dispatcher: dispatcher, registry: registry}
}

// ScheduleMatch creates the match record in the scheduled state. Viewers
// of the sport topic learn about it right away; the live list is untouched
// until the match actually goes live.
func (s *ScoringService) ScheduleMatch(in MatchInput, claims *auth.CustomClaims) (domain.MatchState, error) {
	if !claims.CanScore() {
		return domain.MatchState{}, apperrors.ErrUnauthorized
	}
	if err := ValidateMatch(in); err != nil {
		return domain.MatchState{}, err
	}
	snapshot, err := s.store.Create(toMatchState(in))
	if err != nil {
		return domain.MatchState{}, err
	}
	s.dispatcher.PublishSportUpdate(snapshot.Sport, domain.Summarize(snapshot))
	return snapshot, nil
}

// SubmitDelivery records one ball against a live match.
func (s *ScoringService) SubmitDelivery(matchID string, in DeliveryInput, claims *auth.CustomClaims) (domain.MatchState, error) {
	if !claims.CanScore() {
		return domain.MatchState{}, apperrors.ErrUnauthorized
	}
	if err := ValidateDelivery(in); err != nil {
		return domain.MatchState{}, err
	}

	snapshot, err := s.store.ApplyDelivery(matchID, toDelivery(in))
	if err != nil {
		return domain.MatchState{}, err
	}
	s.broadcast(snapshot, snapshot.IsLive())
	return snapshot, nil
}

// SubmitStatusChange moves a match through its lifecycle. The live list is
// re-broadcast whenever the match enters or leaves the live set.
func (s *ScoringService) SubmitStatusChange(matchID string, newStatus domain.Status, claims *auth.CustomClaims) (domain.MatchState, error) {
	if !claims.CanScore() {
		return domain.MatchState{}, apperrors.ErrUnauthorized
	}

	snapshot, prev, err := s.store.SetStatus(matchID, newStatus)
	if err != nil {
		return domain.MatchState{}, err
	}
	s.broadcast(snapshot, snapshot.IsLive() || prev == domain.StatusLive)
	return snapshot, nil
}

// broadcast emits the three topic-scoped events for a committed mutation.
// The match snapshot goes out with commentary in display order; summaries
// stay lightweight. touchesLiveSet gates the live-matches fanout.
func (s *ScoringService) broadcast(snapshot domain.MatchState, touchesLiveSet bool) {
	display := snapshot.Clone()
	display.Commentary = projection.SortedView(display.Commentary)

	s.dispatcher.PublishMatchUpdate(display)
	s.dispatcher.PublishSportUpdate(snapshot.Sport, domain.Summarize(snapshot))
	if touchesLiveSet {
		s.dispatcher.PublishLiveMatchesUpdate(s.store.LiveSummaries())
	}
}

// Match returns the REST snapshot, commentary in display order — the same
// shape a match-update event carries, so clients resync by refetching.
func (s *ScoringService) Match(matchID string) (domain.MatchState, error) {
	snapshot, err := s.store.Load(matchID)
	if err != nil {
		return domain.MatchState{}, err
	}
	snapshot.Commentary = projection.SortedView(snapshot.Commentary)
	return snapshot, nil
}

// Commentary returns the feed for a match: full display order by default,
// or the submission-order increment after the given cursor.
func (s *ScoringService) Commentary(matchID string, since *time.Time) ([]domain.Delivery, error) {
	snapshot, err := s.store.Load(matchID)
	if err != nil {
		return nil, err
	}
	if since != nil {
		return projection.Since(snapshot.Commentary, *since), nil
	}
	return projection.SortedView(snapshot.Commentary), nil
}

func (s *ScoringService) LiveMatches() []domain.MatchSummary {
	return s.store.LiveSummaries()
}

func (s *ScoringService) JoinTopic(connID string, topic domain.Topic, sink contract.EventSink) {
	s.registry.Join(connID, topic, sink)
}

func (s *ScoringService) LeaveTopic(connID string, topic domain.Topic) {
	s.registry.Leave(connID, topic)
}

func (s *ScoringService) Disconnect(connID string) {
	s.registry.DropConnection(connID)
}
