package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typist/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "typist.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func testSession(i int, set string) model.SessionStats {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)
	end := start.Add(45 * time.Second)
	return model.SessionStats{
		UUID:        fmt.Sprintf("session-%d", i),
		StartedAt:   start,
		EndedAt:     end,
		Set:         set,
		EntriesPath: "/sets/" + set + ".json",
		Words:       10,
		Correct:     60 + i,
		Miss:        i,
		TimeOver:    1,
		MaxSpeed:    8.5,
		WPM:         80,
		Score:       88.5 - float64(5*i),
		Rank:        "ゲスト",
		DurationMs:  end.Sub(start).Milliseconds(),
	}
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i, set := range []string{"en", "toeic", "en"} {
		_, err := st.InsertSession(ctx, testSession(i, set), nil)
		require.NoError(t, err)
	}

	all, err := st.ListSessions(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].EndedAt.Before(all[1].EndedAt))
	assert.Equal(t, "ゲスト", all[0].Rank)
	assert.Equal(t, int64(45000), all[0].DurationMs)

	en, err := st.ListSessions(ctx, model.StatsConfig{Set: "en"})
	require.NoError(t, err)
	require.Len(t, en, 2)
	assert.Equal(t, 62, en[1].Correct)

	since := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	recent, err := st.ListSessions(ctx, model.StatsConfig{Since: &since})
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestInsertSessionRejectsDuplicateUUID(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	letters := []model.LetterStats{{Letter: "a", Seen: 3, Misses: 1}}

	_, err := st.InsertSession(ctx, testSession(0, "en"), letters)
	require.NoError(t, err)
	_, err = st.InsertSession(ctx, testSession(0, "en"), letters)
	require.Error(t, err)

	sessions, err := st.ListSessions(ctx, model.StatsConfig{})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestLetterAggregates(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		letters := []model.LetterStats{
			{Letter: "a", Seen: 10, Misses: i},
			{Letter: "q", Seen: 2, Misses: 1},
		}
		id, err := st.InsertSession(ctx, testSession(i, "en"), letters)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	aggs, err := st.ListLetterAggregatesForSessions(ctx, ids[1:])
	require.NoError(t, err)
	byLetter := map[string]model.LetterAggregate{}
	for _, agg := range aggs {
		byLetter[agg.Letter] = agg
	}
	assert.Equal(t, model.LetterAggregate{Letter: "a", Seen: 20, Misses: 3}, byLetter["a"])
	assert.Equal(t, model.LetterAggregate{Letter: "q", Seen: 4, Misses: 2}, byLetter["q"])

	weak, err := st.GetWeakLetters(ctx, 1, "en")
	require.NoError(t, err)
	byLetter = map[string]model.LetterAggregate{}
	for _, agg := range weak {
		byLetter[agg.Letter] = agg
	}
	assert.Equal(t, 2, byLetter["a"].Misses, "only the latest session is in the window")

	none, err := st.GetWeakLetters(ctx, 0, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}
