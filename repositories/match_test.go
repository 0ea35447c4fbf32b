package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"scorecast/domain"
	apperrors "scorecast/errors"
)

func testRepository(t *testing.T) MatchRepository {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewMatchRepository(db, slog.Default())
}

func sampleMatch(id string) domain.MatchState {
	return domain.MatchState{
		ID:          id,
		Sport:       "cricket",
		TeamA:       "India",
		TeamB:       "Australia",
		Date:        time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC),
		Status:      domain.StatusLive,
		BattingTeam: domain.TeamA,
		Score: domain.Scoreboard{
			TeamA: domain.Score{Runs: 42, Wickets: 1},
			Overs: "5.2",
		},
		Commentary: []domain.Delivery{{
			ID:          uuid.New(),
			Over:        5,
			BallInOver:  2,
			BattingTeam: domain.TeamA,
			Batsman:     "Kohli",
			Bowler:      "Starc",
			RunsOffBat:  4,
			RecordedAt:  time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC),
		}},
		MatchData: map[string]any{"venue": "MCG", "tossWonBy": "teamA"},
	}
}

func TestMatchRepository_SaveAndLoad(t *testing.T) {
	req := require.New(t)
	repo := testRepository(t)
	match := sampleMatch("m1")

	// When a match document is persisted and read back
	req.NoError(repo.Save(match))
	loaded, err := repo.Load("m1")
	req.NoError(err)

	// Then the document round-trips, opaque matchData included
	req.Equal(match.ID, loaded.ID)
	req.Equal(match.Status, loaded.Status)
	req.Equal(match.Score, loaded.Score)
	req.Len(loaded.Commentary, 1)
	req.Equal(match.Commentary[0].ID, loaded.Commentary[0].ID)
	req.Equal("MCG", loaded.MatchData["venue"])
}

func TestMatchRepository_LoadUnknownMatch(t *testing.T) {
	req := require.New(t)
	repo := testRepository(t)

	_, err := repo.Load("missing")

	req.ErrorIs(err, apperrors.ErrMatchNotFound)
}

func TestMatchRepository_SaveOverwrites(t *testing.T) {
	req := require.New(t)
	repo := testRepository(t)

	match := sampleMatch("m1")
	req.NoError(repo.Save(match))

	match.Status = domain.StatusCompleted
	req.NoError(repo.Save(match))

	loaded, err := repo.Load("m1")
	req.NoError(err)
	req.Equal(domain.StatusCompleted, loaded.Status)
}

func TestMatchRepository_List(t *testing.T) {
	req := require.New(t)
	repo := testRepository(t)

	req.NoError(repo.Save(sampleMatch("m1")))
	req.NoError(repo.Save(sampleMatch("m2")))

	matches, err := repo.List()
	req.NoError(err)
	req.Len(matches, 2)
}
