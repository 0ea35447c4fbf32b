package domain

import (
	"time"

	apperrors "scorecast/errors"
)

// Status is the lifecycle state of a match.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusLive, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", apperrors.ErrUnknownStatus
}

// CanTransitionTo enforces the lifecycle table:
// scheduled → live → completed, and scheduled|live → cancelled.
// Completed and cancelled matches are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusScheduled:
		return next == StatusLive || next == StatusCancelled
	case StatusLive:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// Score is one team's tally for the current innings.
type Score struct {
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
}

// Scoreboard is the per-team score plus the current-innings overs string,
// e.g. "15.3" meaning 15 completed overs and 3 balls.
type Scoreboard struct {
	TeamA Score  `json:"teamA"`
	TeamB Score  `json:"teamB"`
	Overs string `json:"overs"`
}

// MatchState is the canonical per-match record. The store owns the only
// mutable instance; everything handed out is a deep copy and must be
// treated as immutable.
type MatchState struct {
	ID          string         `json:"id"`
	Sport       string         `json:"sport"`
	TeamA       string         `json:"teamA"`
	TeamB       string         `json:"teamB"`
	Date        time.Time      `json:"date"`
	Status      Status         `json:"status"`
	BattingTeam TeamSide       `json:"battingTeam"`
	Score       Scoreboard     `json:"score"`
	Commentary  []Delivery     `json:"commentary"`
	MatchData   map[string]any `json:"matchData,omitempty"`
}

func (m MatchState) IsLive() bool {
	return m.Status == StatusLive
}

// Topics returns every broadcast address a mutation of this match maps to.
// The live-matches topic is included only while the match is live.
func (m MatchState) Topics() []Topic {
	topics := []Topic{MatchTopic(m.ID), SportTopic(m.Sport)}
	if m.IsLive() {
		topics = append(topics, LiveMatchesTopic)
	}
	return topics
}

// Clone deep-copies the state so a snapshot can leave the store's critical
// section without sharing the commentary slice or the matchData map.
// MatchData values are passed through verbatim; the core never mutates or
// interprets their inner structure, so a shallow copy of the map suffices.
func (m MatchState) Clone() MatchState {
	out := m
	if m.Commentary != nil {
		out.Commentary = make([]Delivery, len(m.Commentary))
		copy(out.Commentary, m.Commentary)
	}
	if m.MatchData != nil {
		out.MatchData = make(map[string]any, len(m.MatchData))
		for k, v := range m.MatchData {
			out.MatchData[k] = v
		}
	}
	return out
}
