package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	req := require.New(t)

	req.True(StatusScheduled.CanTransitionTo(StatusLive))
	req.True(StatusScheduled.CanTransitionTo(StatusCancelled))
	req.True(StatusLive.CanTransitionTo(StatusCompleted))
	req.True(StatusLive.CanTransitionTo(StatusCancelled))

	req.False(StatusScheduled.CanTransitionTo(StatusCompleted))
	req.False(StatusLive.CanTransitionTo(StatusScheduled))
	req.False(StatusCompleted.CanTransitionTo(StatusLive))
	req.False(StatusCompleted.CanTransitionTo(StatusCancelled))
	req.False(StatusCancelled.CanTransitionTo(StatusLive))
}

func TestParseStatus(t *testing.T) {
	req := require.New(t)

	status, err := ParseStatus("live")
	req.NoError(err)
	req.Equal(StatusLive, status)

	_, err = ParseStatus("paused")
	req.Error(err)
}

func ball(team TeamSide, over, ballNo, runs, extras int, wicket bool, at time.Time) Delivery {
	d := Delivery{
		ID:          uuid.New(),
		Over:        over,
		BallInOver:  ballNo,
		BattingTeam: team,
		Batsman:     "Kohli",
		Bowler:      "Starc",
		RunsOffBat:  runs,
		Extras:      extras,
		IsWicket:    wicket,
		RecordedAt:  at,
	}
	if wicket {
		d.WicketType = WicketBowled
	}
	return d
}

func TestRecompute_SumsRunsAndWickets(t *testing.T) {
	req := require.New(t)
	base := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	commentary := []Delivery{
		ball(TeamA, 0, 1, 4, 0, false, base),
		ball(TeamA, 0, 2, 0, 1, false, base.Add(time.Second)),
		ball(TeamA, 0, 3, 0, 0, true, base.Add(2*time.Second)),
		ball(TeamB, 10, 4, 6, 0, false, base.Add(3*time.Second)),
	}

	board := Recompute(commentary, TeamA)

	req.Equal(Score{Runs: 5, Wickets: 1}, board.TeamA)
	req.Equal(Score{Runs: 6, Wickets: 0}, board.TeamB)
	req.Equal("0.3", board.Overs)
}

func TestRecompute_OrderIndependent(t *testing.T) {
	req := require.New(t)
	base := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	commentary := []Delivery{
		ball(TeamA, 3, 1, 1, 0, false, base),
		ball(TeamA, 3, 2, 2, 1, false, base.Add(time.Second)),
		ball(TeamA, 3, 3, 0, 0, true, base.Add(2*time.Second)),
		ball(TeamA, 3, 4, 4, 0, false, base.Add(3*time.Second)),
		ball(TeamA, 3, 5, 6, 2, false, base.Add(4*time.Second)),
	}
	want := Recompute(commentary, TeamA)

	// However the submissions are permuted, the scoreboard is identical.
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]Delivery, len(commentary))
		copy(shuffled, commentary)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		req.Equal(want, Recompute(shuffled, TeamA))
	}
}

func TestRecompute_CorrectionReplacesBall(t *testing.T) {
	req := require.New(t)
	base := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	// Given ball 19.6 scored as 4, then corrected to 6
	original := ball(TeamA, 19, 6, 4, 0, false, base)
	correction := ball(TeamA, 19, 6, 6, 0, false, base.Add(time.Second))

	board := Recompute([]Delivery{original, correction}, TeamA)

	// Then only the corrected delivery counts
	req.Equal(Score{Runs: 6, Wickets: 0}, board.TeamA)
	// And ball 6 closes the over
	req.Equal("20.0", board.Overs)
}

func TestRecompute_EmptyCommentary(t *testing.T) {
	req := require.New(t)

	board := Recompute(nil, TeamA)

	req.Equal(Scoreboard{Overs: "0.0"}, board)
}

func TestEffectiveDeliveries_KeepsLatestPerIdentity(t *testing.T) {
	req := require.New(t)
	base := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	first := ball(TeamA, 5, 2, 1, 0, false, base)
	corrected := ball(TeamA, 5, 2, 2, 0, false, base.Add(time.Second))
	other := ball(TeamA, 5, 3, 0, 0, false, base.Add(2*time.Second))

	effective := EffectiveDeliveries([]Delivery{first, corrected, other})

	req.Len(effective, 2)
	req.Equal(corrected.ID, effective[0].ID)
	req.Equal(other.ID, effective[1].ID)
}

func TestMatchState_Topics(t *testing.T) {
	req := require.New(t)

	m := MatchState{ID: "m1", Sport: "cricket", Status: StatusScheduled}
	req.Equal([]Topic{MatchTopic("m1"), SportTopic("cricket")}, m.Topics())

	m.Status = StatusLive
	req.Equal([]Topic{MatchTopic("m1"), SportTopic("cricket"), LiveMatchesTopic}, m.Topics())
}

func TestMatchState_CloneIsDeep(t *testing.T) {
	req := require.New(t)
	base := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	m := MatchState{
		ID:         "m1",
		Commentary: []Delivery{ball(TeamA, 0, 1, 4, 0, false, base)},
		MatchData:  map[string]any{"toss": "teamA"},
	}

	clone := m.Clone()
	clone.Commentary[0].RunsOffBat = 99
	clone.MatchData["toss"] = "teamB"

	req.Equal(4, m.Commentary[0].RunsOffBat)
	req.Equal("teamA", m.MatchData["toss"])
}

func TestSummarize(t *testing.T) {
	req := require.New(t)

	m := MatchState{
		ID:     "m1",
		Sport:  "cricket",
		TeamA:  "India",
		TeamB:  "Australia",
		Status: StatusLive,
		Score: Scoreboard{
			TeamA: Score{Runs: 128, Wickets: 3},
			TeamB: Score{Runs: 0, Wickets: 0},
			Overs: "15.3",
		},
	}

	summary := Summarize(m)

	req.Equal("128/3", summary.ScoreA)
	req.Equal("0/0", summary.ScoreB)
	req.Equal("15.3", summary.Overs)
	req.Equal(StatusLive, summary.Status)
}
