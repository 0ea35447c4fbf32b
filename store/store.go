// Package store owns the canonical match state. Every snapshot that leaves
// it is a deep copy; nothing outside this package mutates a MatchState.
package store

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"scorecast/domain"
	apperrors "scorecast/errors"
	"scorecast/repositories"
)

// MatchStore serializes all mutations of a single match behind that match's
// own mutex. Different matches mutate fully concurrently; there is no
// global write lock. Persistence commits inside the critical section, so a
// returned snapshot is always durable before any broadcast is attempted.
type MatchStore struct {
	mu      sync.RWMutex // guards the matches map, not the entries
	matches map[string]*matchEntry
	repo    repositories.IMatchRepository
	log     *slog.Logger
}

type matchEntry struct {
	mu             sync.Mutex
	state          domain.MatchState
	lastRecordedAt time.Time
}

// NewMatchStore rebuilds the canonical state from the repository.
func NewMatchStore(repo repositories.IMatchRepository, log *slog.Logger) (*MatchStore, error) {
	persisted, err := repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load match documents: %w", err)
	}

	s := &MatchStore{
		matches: make(map[string]*matchEntry, len(persisted)),
		repo:    repo,
		log:     log,
	}
	for _, m := range persisted {
		entry := &matchEntry{state: m}
		for _, d := range m.Commentary {
			if d.RecordedAt.After(entry.lastRecordedAt) {
				entry.lastRecordedAt = d.RecordedAt
			}
		}
		s.matches[m.ID] = entry
	}
	if len(persisted) > 0 {
		log.Info("Recovered match state", "matches", len(persisted))
	}
	return s, nil
}

// Create schedules a new match: status scheduled, empty commentary, zero
// scoreboard. The batting team defaults to team A until an innings payload
// says otherwise.
func (s *MatchStore) Create(m domain.MatchState) (domain.MatchState, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.Status = domain.StatusScheduled
	m.Commentary = nil
	m.Score = domain.Scoreboard{Overs: "0.0"}
	if m.BattingTeam == "" {
		m.BattingTeam = domain.TeamA
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.matches[m.ID]; exists {
		return domain.MatchState{}, apperrors.ErrMatchExists
	}
	if err := s.repo.Save(m); err != nil {
		return domain.MatchState{}, fmt.Errorf("failed to persist match %s: %w", m.ID, err)
	}
	s.matches[m.ID] = &matchEntry{state: m}
	return m.Clone(), nil
}

func (s *MatchStore) entry(matchID string) (*matchEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.matches[matchID]
	if !ok {
		return nil, apperrors.ErrMatchNotFound
	}
	return entry, nil
}

// Load returns a snapshot of the match, commentary in submission order.
func (s *MatchStore) Load(matchID string) (domain.MatchState, error) {
	entry, err := s.entry(matchID)
	if err != nil {
		return domain.MatchState{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.state.Clone(), nil
}

// ApplyDelivery appends one ball to a live match and recomputes the
// scoreboard from the full delivery set. The delivery is stamped here:
// id, batting team, and a RecordedAt forced monotonic per match so
// corrections always sort after the ball they replace.
func (s *MatchStore) ApplyDelivery(matchID string, d domain.Delivery) (domain.MatchState, error) {
	entry, err := s.entry(matchID)
	if err != nil {
		return domain.MatchState{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if !entry.state.IsLive() {
		return domain.MatchState{}, apperrors.ErrInvalidTransition
	}

	d.ID = uuid.New()
	d.BattingTeam = entry.state.BattingTeam
	d.RecordedAt = s.stampRecordedAt(entry)

	next := entry.state.Clone()
	next.Commentary = append(next.Commentary, d)
	next.Score = domain.Recompute(next.Commentary, next.BattingTeam)

	if err := s.repo.Save(next); err != nil {
		return domain.MatchState{}, fmt.Errorf("failed to persist delivery %s: %w", d.BallNumber(), err)
	}
	entry.state = next
	return next.Clone(), nil
}

// SetStatus applies a lifecycle transition and returns the new snapshot
// along with the previous status, which the gateway needs to detect a match
// leaving the live set.
func (s *MatchStore) SetStatus(matchID string, next domain.Status) (domain.MatchState, domain.Status, error) {
	entry, err := s.entry(matchID)
	if err != nil {
		return domain.MatchState{}, "", err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	prev := entry.state.Status
	if !prev.CanTransitionTo(next) {
		return domain.MatchState{}, "", apperrors.ErrInvalidTransition
	}

	updated := entry.state.Clone()
	updated.Status = next
	if err := s.repo.Save(updated); err != nil {
		return domain.MatchState{}, "", fmt.Errorf("failed to persist status of match %s: %w", matchID, err)
	}
	entry.state = updated
	return updated.Clone(), prev, nil
}

// LiveSummaries projects every live match into its list row, ordered by
// match id so consecutive broadcasts are comparable.
func (s *MatchStore) LiveSummaries() []domain.MatchSummary {
	s.mu.RLock()
	entries := make([]*matchEntry, 0, len(s.matches))
	for _, e := range s.matches {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	var live []domain.MatchState
	for _, e := range entries {
		e.mu.Lock()
		if e.state.IsLive() {
			live = append(live, e.state.Clone())
		}
		e.mu.Unlock()
	}
	sort.Slice(live, func(i, j int) bool { return live[i].ID < live[j].ID })

	return lo.Map(live, func(m domain.MatchState, _ int) domain.MatchSummary {
		return domain.Summarize(m)
	})
}

// stampRecordedAt hands out a per-match monotonic ingestion time. Two balls
// accepted within the same clock tick, or a clock stepping backwards, must
// never produce equal or inverted RecordedAt values: the display tie-break
// and the since-cursor both depend on strict ordering.
func (s *MatchStore) stampRecordedAt(entry *matchEntry) time.Time {
	now := time.Now().UTC()
	if !now.After(entry.lastRecordedAt) {
		now = entry.lastRecordedAt.Add(time.Nanosecond)
	}
	entry.lastRecordedAt = now
	return now
}
