package game

import (
	"testing"

	"gamelog_daily/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(v int64) *int64 { return &v }

func userIDs(standings []Standing) []int64 {
	ids := make([]int64, len(standings))
	for i, s := range standings {
		ids[i] = s.UserID
	}
	return ids
}

func TestRankStandings_Word(t *testing.T) {
	attempts := []*model.LeaderboardAttempt{
		{UserID: 1, Won: false},
		{UserID: 1, Won: true, Score: 60},
		{UserID: 2, Won: true, Score: 70},
		{UserID: 3, Won: false},
		{UserID: 2, Won: true, Score: 30},
		{UserID: 4, Won: true, Score: 60},
	}

	standings := RankStandings(model.ModeWord, attempts)

	require.Len(t, standings, 3)
	assert.Equal(t, []int64{2, 1, 4}, userIDs(standings))
	assert.Equal(t, int64(100), standings[0].Value)
	assert.Equal(t, 2, standings[0].Wins)
	assert.Equal(t, int64(60), standings[1].Value)
}

func TestRankStandings_Memory(t *testing.T) {
	attempts := []*model.LeaderboardAttempt{
		{UserID: 1, Won: true, Score: 1200, DurationMs: ms(50000)},
		{UserID: 2, Won: true, Score: 1296, DurationMs: ms(4000)},
		{UserID: 1, Won: true, Score: 1250, DurationMs: ms(42000)},
		{UserID: 3, Won: true, Score: 0},
	}

	standings := RankStandings(model.ModeMemory, attempts)

	require.Len(t, standings, 3)
	assert.Equal(t, []int64{2, 1, 3}, userIDs(standings))
	assert.Equal(t, int64(1250), standings[1].Value)
	require.NotNil(t, standings[1].BestDurationMs)
	assert.Equal(t, int64(42000), *standings[1].BestDurationMs)
	assert.Nil(t, standings[2].BestDurationMs)
}

func TestRankStandings_Reaction(t *testing.T) {
	attempts := []*model.LeaderboardAttempt{
		{UserID: 1, Won: true, DurationMs: ms(310)},
		{UserID: 2, Won: true, DurationMs: ms(190)},
		{UserID: 3, Won: true},
		{UserID: 4, Won: true, DurationMs: ms(250)},
		{UserID: 1, Won: true, DurationMs: ms(240)},
	}

	standings := RankStandings(model.ModeReaction, attempts)

	assert.Equal(t, []int64{2, 1, 4}, userIDs(standings))
	assert.Equal(t, int64(190), standings[0].Value)
	assert.Equal(t, int64(240), standings[1].Value)
	assert.Equal(t, 2, standings[1].Attempts)
}

func TestRankStandings_TiesKeepEncounterOrder(t *testing.T) {
	word := []*model.LeaderboardAttempt{
		{UserID: 7, Won: true, Score: 50},
		{UserID: 3, Won: true, Score: 50},
		{UserID: 5, Won: true, Score: 50},
	}
	assert.Equal(t, []int64{7, 3, 5}, userIDs(RankStandings(model.ModeWord, word)))

	reaction := []*model.LeaderboardAttempt{
		{UserID: 9, DurationMs: ms(200)},
		{UserID: 8, DurationMs: ms(200)},
		{UserID: 6, DurationMs: ms(150)},
	}
	assert.Equal(t, []int64{6, 9, 8}, userIDs(RankStandings(model.ModeReaction, reaction)))
}

func TestRankStandings_TruncatesToTopTen(t *testing.T) {
	var attempts []*model.LeaderboardAttempt
	for i := int64(1); i <= 15; i++ {
		attempts = append(attempts, &model.LeaderboardAttempt{UserID: i, Won: true, Score: int(i)})
	}

	standings := RankStandings(model.ModeWord, attempts)

	require.Len(t, standings, LeaderboardSize)
	assert.Equal(t, int64(15), standings[0].UserID)
	assert.Equal(t, int64(6), standings[LeaderboardSize-1].UserID)
}

func TestRankStandings_Empty(t *testing.T) {
	assert.Empty(t, RankStandings(model.ModeWord, nil))
	assert.Empty(t, RankStandings(model.ModeReaction, []*model.LeaderboardAttempt{nil, {UserID: 1}}))
}
