package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeaderboard(t *testing.T) (*LeaderboardManager, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return NewLeaderboardManager(client), mr
}

func TestLeaderboard_RecordGameResult(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboard(t)
	defer mr.Close()
	ctx := context.Background()

	err := lm.RecordGameResult(ctx, "p1", "Player1", 35, true)
	require.NoError(t, err)
	err = lm.RecordGameResult(ctx, "p1", "Player1", 20, false)
	require.NoError(t, err)

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.Games)
	assert.Equal(t, 1, stats.GamesWon)
	assert.Equal(t, 55, stats.Score)
	assert.InDelta(t, 50.0, stats.WinRate(), 0.01)
}

func TestLeaderboard_LowestPenaltyRanksFirst(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboard(t)
	defer mr.Close()
	ctx := context.Background()

	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Player1", 120, false))
	require.NoError(t, lm.RecordGameResult(ctx, "p2", "Player2", 15, true))
	require.NoError(t, lm.RecordGameResult(ctx, "p3", "Player3", 60, false))

	entries, err := lm.GetLeaderboard(ctx, "total", 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// 罚分最低的排第一
	assert.Equal(t, "p2", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "p3", entries[1].PlayerID)
	assert.Equal(t, "p1", entries[2].PlayerID)

	rank, err := lm.GetPlayerRank(ctx, "p3")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rank)
}

func TestLeaderboard_UnknownPlayer(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboard(t)
	defer mr.Close()
	ctx := context.Background()

	stats, err := lm.GetPlayerStats(ctx, "nobody")
	assert.NoError(t, err)
	assert.Nil(t, stats)

	rank, err := lm.GetPlayerRank(ctx, "nobody")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), rank)
}
