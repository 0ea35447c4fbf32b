package services

import (
	"time"

	"github.com/go-playground/validator/v10"

	"scorecast/domain"
	apperrors "scorecast/errors"
)

var validate = validator.New()

// DeliveryInput is what a scorer client submits for one ball. RecordedAt
// and the batting team are deliberately absent: the store stamps both at
// ingestion so clients can't skew ordering or attribution.
type DeliveryInput struct {
	Over           int    `json:"over" validate:"gte=0"`
	BallInOver     int    `json:"ballInOver" validate:"gte=1"`
	Batsman        string `json:"batsman" validate:"required"`
	Bowler         string `json:"bowler" validate:"required"`
	RunsOffBat     int    `json:"runsOffBat" validate:"gte=0"`
	Extras         int    `json:"extras" validate:"gte=0"`
	IsWicket       bool   `json:"isWicket"`
	WicketType     string `json:"wicketType,omitempty"`
	Note           string `json:"note,omitempty"`
	CommentaryText string `json:"commentaryText,omitempty"`
}

// ValidateDelivery rejects malformed input before any state is touched.
// The wicket type must be present iff a wicket fell, and must be one of
// the known dismissal kinds.
func ValidateDelivery(in DeliveryInput) error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	if in.IsWicket {
		if in.WicketType == "" {
			return apperrors.ErrMissingWicketType
		}
		if !domain.WicketType(in.WicketType).Valid() {
			return apperrors.ErrUnknownWicketType
		}
	} else if in.WicketType != "" {
		return apperrors.ErrUnknownWicketType
	}
	return nil
}

func toDelivery(in DeliveryInput) domain.Delivery {
	return domain.Delivery{
		Over:           in.Over,
		BallInOver:     in.BallInOver,
		Batsman:        in.Batsman,
		Bowler:         in.Bowler,
		RunsOffBat:     in.RunsOffBat,
		Extras:         in.Extras,
		IsWicket:       in.IsWicket,
		WicketType:     domain.WicketType(in.WicketType),
		Note:           in.Note,
		CommentaryText: in.CommentaryText,
	}
}

// MatchInput schedules a new match. MatchData is an opaque innings payload
// stored and forwarded verbatim; the core never inspects it.
type MatchInput struct {
	ID          string         `json:"id,omitempty"`
	Sport       string         `json:"sport" validate:"required"`
	TeamA       string         `json:"teamA" validate:"required"`
	TeamB       string         `json:"teamB" validate:"required"`
	Date        time.Time      `json:"date"`
	BattingTeam string         `json:"battingTeam,omitempty" validate:"omitempty,oneof=teamA teamB"`
	MatchData   map[string]any `json:"matchData,omitempty"`
}

func ValidateMatch(in MatchInput) error {
	return validate.Struct(in)
}

func toMatchState(in MatchInput) domain.MatchState {
	return domain.MatchState{
		ID:          in.ID,
		Sport:       in.Sport,
		TeamA:       in.TeamA,
		TeamB:       in.TeamB,
		Date:        in.Date,
		BattingTeam: domain.TeamSide(in.BattingTeam),
		MatchData:   in.MatchData,
	}
}
