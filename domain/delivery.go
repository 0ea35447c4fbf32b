// Package domain contains the core concepts of the live match system.
// This file defines the Delivery value object: one ball bowled, with its
// outcome. Deliveries are immutable once accepted by the store.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TeamSide identifies which of the two teams a value refers to.
type TeamSide string

const (
	TeamA TeamSide = "teamA"
	TeamB TeamSide = "teamB"
)

// WicketType describes how a batsman got out.
type WicketType string

const (
	WicketCaught    WicketType = "caught"
	WicketBowled    WicketType = "bowled"
	WicketLBW       WicketType = "lbw"
	WicketRunOut    WicketType = "runOut"
	WicketStumped   WicketType = "stumped"
	WicketHitWicket WicketType = "hitWicket"
	WicketOther     WicketType = "other"
)

func (w WicketType) Valid() bool {
	switch w {
	case WicketCaught, WicketBowled, WicketLBW, WicketRunOut, WicketStumped, WicketHitWicket, WicketOther:
		return true
	}
	return false
}

// Delivery represents one ball bowled.
//
// (Over, BallInOver) pairs are not unique within a match: a corrected or
// re-bowled ball reuses its identity. Display order is resolved by
// RecordedAt, which the store stamps monotonically per match at ingestion.
type Delivery struct {
	ID             uuid.UUID  `json:"id"`
	Over           int        `json:"over"`
	BallInOver     int        `json:"ballInOver"`
	BattingTeam    TeamSide   `json:"battingTeam"`
	Batsman        string     `json:"batsman"`
	Bowler         string     `json:"bowler"`
	RunsOffBat     int        `json:"runsOffBat"`
	Extras         int        `json:"extras"`
	IsWicket       bool       `json:"isWicket"`
	WicketType     WicketType `json:"wicketType,omitempty"`
	Note           string     `json:"note,omitempty"`
	CommentaryText string     `json:"commentaryText,omitempty"`
	RecordedAt     time.Time  `json:"recordedAt"`
}

// BallNumber formats the legacy display identity "{over}.{ballInOver}".
// It is derived, never stored or parsed back.
func (d Delivery) BallNumber() string {
	return fmt.Sprintf("%d.%d", d.Over, d.BallInOver)
}

// ballKey is the dedup identity of a delivery within an innings.
type ballKey struct {
	team TeamSide
	over int
	ball int
}

func (d Delivery) key() ballKey {
	return ballKey{team: d.BattingTeam, over: d.Over, ball: d.BallInOver}
}

// CompareForDisplay orders two deliveries for the commentary feed:
// most recent ball first, ties broken by latest RecordedAt first.
//
// Over and BallInOver are compared as integers. A float or string parse of
// BallNumber would order "15.12" before "15.2" (or worse, equal to "15.12"
// truncated), so the structured comparison is mandatory even though the
// dotted form is what clients display.
func CompareForDisplay(a, b Delivery) int {
	if a.Over != b.Over {
		if a.Over > b.Over {
			return -1
		}
		return 1
	}
	if a.BallInOver != b.BallInOver {
		if a.BallInOver > b.BallInOver {
			return -1
		}
		return 1
	}
	if a.RecordedAt.After(b.RecordedAt) {
		return -1
	}
	if b.RecordedAt.After(a.RecordedAt) {
		return 1
	}
	return 0
}
