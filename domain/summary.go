package domain

import "fmt"

// MatchSummary is the lightweight list-row projection pushed on the sport
// and live-matches topics. Viewers needing full detail subscribe to the
// match topic or fetch the REST snapshot.
type MatchSummary struct {
	ID     string `json:"id"`
	Sport  string `json:"sport"`
	TeamA  string `json:"teamA"`
	TeamB  string `json:"teamB"`
	Status Status `json:"status"`
	ScoreA string `json:"scoreA"`
	ScoreB string `json:"scoreB"`
	Overs  string `json:"overs"`
}

func Summarize(m MatchState) MatchSummary {
	return MatchSummary{
		ID:     m.ID,
		Sport:  m.Sport,
		TeamA:  m.TeamA,
		TeamB:  m.TeamB,
		Status: m.Status,
		ScoreA: formatScoreLine(m.Score.TeamA),
		ScoreB: formatScoreLine(m.Score.TeamB),
		Overs:  m.Score.Overs,
	}
}

func formatScoreLine(s Score) string {
	return fmt.Sprintf("%d/%d", s.Runs, s.Wickets)
}
