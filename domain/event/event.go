package event

import "scorecast/domain"

// Event is a topic-addressed broadcast emitted after a match mutation.
// Payloads are full-state replacements, never diffs: a viewer that missed
// events renders the next one and is consistent again.
type Event interface {
	Name() string
	Topics() []domain.Topic
	Payload() any
}

// MatchUpdated carries the full match snapshot, commentary already in
// display order, to subscribers of the match topic.
type MatchUpdated struct {
	Snapshot domain.MatchState
}

func (e MatchUpdated) Name() string { return "match-update" }

func (e MatchUpdated) Topics() []domain.Topic {
	return []domain.Topic{domain.MatchTopic(e.Snapshot.ID)}
}

func (e MatchUpdated) Payload() any { return e.Snapshot }

// SportUpdated carries a list-row summary to subscribers of a sport topic.
type SportUpdated struct {
	Sport   string
	Summary domain.MatchSummary
}

func (e SportUpdated) Name() string { return "sport-update" }

func (e SportUpdated) Topics() []domain.Topic {
	return []domain.Topic{domain.SportTopic(e.Sport)}
}

func (e SportUpdated) Payload() any { return e.Summary }

// LiveMatchesUpdated carries the summaries of every currently live match.
// It is emitted when a match enters or leaves the live set, or when a live
// match's score changes.
type LiveMatchesUpdated struct {
	Matches []domain.MatchSummary
}

func (e LiveMatchesUpdated) Name() string { return "live-matches-update" }

func (e LiveMatchesUpdated) Topics() []domain.Topic {
	return []domain.Topic{domain.LiveMatchesTopic}
}

func (e LiveMatchesUpdated) Payload() any { return e.Matches }
