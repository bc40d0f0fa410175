package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightout11/cracked-ice/internal/combos"
	"github.com/insightout11/cracked-ice/internal/schedtest"
	"github.com/insightout11/cracked-ice/internal/tiers"
)

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[T](file)
	defer reader.Close()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestBestMatchRowStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(BestMatchRow))
	for _, col := range []string{"season", "k", "rank", "teams", "usable_starts", "off_night_pct", "unique_days", "slots_per_day"} {
		_, ok := schema.Lookup(col)
		assert.True(t, ok, "column %s should exist", col)
	}
}

func TestTierRowStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(TierRow))
	for _, col := range []string{"team_code", "tier", "playoff_start", "regular_games", "playoff_score"} {
		_, ok := schema.Lookup(col)
		assert.True(t, ok, "column %s should exist", col)
	}
}

func TestBestMatchRows(t *testing.T) {
	best := map[int][]combos.Entry{
		3: {{Teams: []string{"BOS", "MTL", "TOR"}, UsableStarts: 9, OffNightPct: 0.5, UniqueDays: 7}},
		2: {
			{Teams: []string{"BOS", "TOR"}, UsableStarts: 6, OffNightPct: 0.25, UniqueDays: 4},
			{Teams: []string{"BOS", "MTL"}, UsableStarts: 5, OffNightPct: 0.2, UniqueDays: 5},
		},
	}
	rows := BestMatchRows("20242025", 2, best)
	require.Len(t, rows, 3)
	assert.Equal(t, BestMatchRow{
		Season: "20242025", Size: 2, Rank: 1, Teams: "BOS-TOR",
		UsableStarts: 6, OffNightPct: 0.25, UniqueDays: 4, SlotsPerDay: 2,
	}, rows[0])
	assert.Equal(t, int32(2), rows[1].Rank)
	assert.Equal(t, int32(3), rows[2].Size)
	assert.Equal(t, int32(1), rows[2].Rank)
}

func TestExportRoundTrip(t *testing.T) {
	store := schedtest.League(5, 60)
	cache, err := combos.Precompute(store, 2)
	require.NoError(t, err)
	best := make(map[int][]combos.Entry)
	for _, k := range combos.Sizes {
		best[k], err = cache.Top(k)
		require.NoError(t, err)
	}
	report, err := tiers.Score(store, "2024-11-18", tiers.DefaultWeights())
	require.NoError(t, err)

	bestRows := BestMatchRows("synthetic", 2, best)
	tierRows := TierRows(report)

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := Export(dir, bestRows, tierRows)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, BestMatchesFile), filepath.Join(dir, TiersFile)}, paths)

	gotBest := readAll[BestMatchRow](t, paths[0])
	assert.Equal(t, bestRows, gotBest)
	assert.Len(t, gotBest, combos.TopN*len(combos.Sizes))

	gotTiers := readAll[TierRow](t, paths[1])
	require.Len(t, gotTiers, 32)
	assert.Equal(t, tierRows, gotTiers)
	assert.Equal(t, "2024-11-18", gotTiers[0].PlayoffStart)
}

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteTiers(nil, path))
	assert.Empty(t, readAll[TierRow](t, path))
}

func TestWriteInvalidPath(t *testing.T) {
	err := WriteBestMatches(nil, filepath.Join(t.TempDir(), "missing", "x.parquet"))
	assert.Error(t, err)
}

func TestExportWithoutTiers(t *testing.T) {
	store := schedtest.League(9, 30)
	cache, err := combos.Precompute(store, 2)
	require.NoError(t, err)
	pairs, err := cache.Top(2)
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := Export(dir, BestMatchRows("synthetic", 2, map[int][]combos.Entry{2: pairs}), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, BestMatchesFile)}, paths)
	assert.NoFileExists(t, filepath.Join(dir, TiersFile))
}
