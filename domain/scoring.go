package domain

import "fmt"

// ballsPerOver is the baseline six-ball over. Extras rules can inflate
// BallInOver past it; the overs string then simply shows the raw ball count
// until the scorer opens the next over.
const ballsPerOver = 6

// Recompute derives the scoreboard from the full delivery set. It is run on
// every accepted delivery instead of patching the previous score: O(n) over
// at most a few hundred balls, and immune to double counting from retried
// or out-of-order submissions — the same final set always yields the same
// scoreboard, whatever order it arrived in.
//
// Corrections are resolved here: when several deliveries share the same
// (battingTeam, over, ballInOver) identity, only the latest RecordedAt one
// counts. The commentary collection itself keeps every submission.
func Recompute(commentary []Delivery, battingTeam TeamSide) Scoreboard {
	effective := EffectiveDeliveries(commentary)

	var board Scoreboard
	maxOver, maxBall := -1, 0
	for _, d := range effective {
		score := &board.TeamA
		if d.BattingTeam == TeamB {
			score = &board.TeamB
		}
		score.Runs += d.RunsOffBat + d.Extras
		if d.IsWicket {
			score.Wickets++
		}
		if d.BattingTeam != battingTeam {
			continue
		}
		if d.Over > maxOver || (d.Over == maxOver && d.BallInOver > maxBall) {
			maxOver, maxBall = d.Over, d.BallInOver
		}
	}
	board.Overs = formatOvers(maxOver, maxBall)
	return board
}

// EffectiveDeliveries filters a commentary set down to the deliveries that
// count toward the score: one per ball identity, latest RecordedAt wins.
// Submission order of the survivors is preserved.
func EffectiveDeliveries(commentary []Delivery) []Delivery {
	latest := make(map[ballKey]Delivery, len(commentary))
	for _, d := range commentary {
		prev, ok := latest[d.key()]
		if !ok || d.RecordedAt.After(prev.RecordedAt) {
			latest[d.key()] = d
		}
	}
	out := make([]Delivery, 0, len(latest))
	for _, d := range commentary {
		if latest[d.key()].ID == d.ID {
			out = append(out, d)
		}
	}
	return out
}

// formatOvers renders the decimal overs string for the highest ball bowled.
// Ball 6 closes the over: "19.6" is displayed as "20.0".
func formatOvers(over, ball int) string {
	if over < 0 {
		return "0.0"
	}
	if ball == ballsPerOver {
		return fmt.Sprintf("%d.0", over+1)
	}
	return fmt.Sprintf("%d.%d", over, ball)
}
