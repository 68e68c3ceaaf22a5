package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maniboard/internal/model"
)

func persons(facts []model.LeaderboardFact) []string {
	out := make([]string, len(facts))
	for i, f := range facts {
		out[i] = f.Person
	}
	return out
}

func TestClean_FillForwardMergedCells(t *testing.T) {
	t.Parallel()

	grid := model.Grid{
		{"月份", "門市", "人員", "毛利"},
		{"2026-01", "A", "alice", "10"},
		{"", "nan", " bob ", "20"},
		{"None", "", "carol", "5"},
	}
	lb, err := NewLeaderboardCleaner(DefaultLeaderboardColumns(), nil).Clean(grid)
	require.NoError(t, err)
	require.Len(t, lb.Facts, 3)

	for _, f := range lb.Facts {
		assert.Equal(t, "A", f.Store)
		assert.Equal(t, "2026-01", f.Month)
		assert.Equal(t, "2026-01", f.MonthKey)
		assert.True(t, f.HasMonth)
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, persons(lb.Facts))
	assert.Equal(t, []string{"毛利"}, lb.Metrics)
	assert.Equal(t, 20.0, lb.Facts[1].Metric("毛利"))
}

func TestClean_SummaryRowsExcluded(t *testing.T) {
	t.Parallel()

	grid := model.Grid{
		{"月份", "門市", "人員", "毛利", "門號"},
		{"2026-01", "小西門店", "小西門", "900", "9"},
		{"", "", "alice", "500", "5"},
		{"", "", "小西門店", "900", "9"},
		{"", "", "bob", "400", "4"},
		{"", "東門店", "合計", "1", "1"},
		{"", "", "總計", "1", "1"},
		{"", "", "全部", "1", "1"},
		{"", "", "小計", "1", "1"},
		{"", "", "總合計", "1", "1"},
		{"", "", "dave", "7", "x"},
	}
	lb, err := NewLeaderboardCleaner(DefaultLeaderboardColumns(), nil).Clean(grid)
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob", "dave"}, persons(lb.Facts))
	assert.Equal(t, 7, lb.Dropped)
	assert.Equal(t, "東門店", lb.Facts[2].Store)
	assert.Equal(t, 0.0, lb.Facts[2].Metric("門號"))
}

func TestIsStoreSummaryRow(t *testing.T) {
	t.Parallel()

	assert.True(t, IsStoreSummaryRow("小西門店", "小西門"))
	assert.True(t, IsStoreSummaryRow("小西門店", "小西門店"))
	assert.True(t, IsStoreSummaryRow("東門店", "總計"))
	assert.False(t, IsStoreSummaryRow("小西門店", "alice"))
	assert.False(t, IsStoreSummaryRow("小西門店", "小西"))
	assert.False(t, IsStoreSummaryRow("東門店", "total"))
}

func TestClean_CustomSummaryPredicate(t *testing.T) {
	t.Parallel()

	grid := model.Grid{
		{"月份", "門市", "人員", "毛利"},
		{"2026-01", "東門店", "東門", "1"},
		{"", "", "SUM", "2"},
	}
	onlySum := func(store, person string) bool { return person == "SUM" }
	lb, err := NewLeaderboardCleaner(DefaultLeaderboardColumns(), onlySum).Clean(grid)
	require.NoError(t, err)
	assert.Equal(t, []string{"東門"}, persons(lb.Facts))
}

func TestClean_EmptyPersonDropped(t *testing.T) {
	t.Parallel()

	grid := model.Grid{
		{"月份", "門市", "人員", "毛利"},
		{"2026-01", "東門店", "", "1"},
		{"", "", "  ", "2"},
		{"", "", "erin", "3"},
	}
	lb, err := NewLeaderboardCleaner(DefaultLeaderboardColumns(), nil).Clean(grid)
	require.NoError(t, err)
	assert.Equal(t, []string{"erin"}, persons(lb.Facts))
	assert.Equal(t, "東門店", lb.Facts[0].Store)
}

func TestClean_UnparseableMonthKeptWithoutKey(t *testing.T) {
	t.Parallel()

	grid := model.Grid{
		{"月份", "門市", "人員", "毛利"},
		{"上個月", "東門店", "frank", "1"},
		{"2026年2月", "東門店", "gina", "2"},
	}
	lb, err := NewLeaderboardCleaner(DefaultLeaderboardColumns(), nil).Clean(grid)
	require.NoError(t, err)
	require.Len(t, lb.Facts, 2)
	assert.False(t, lb.Facts[0].HasMonth)
	assert.Equal(t, "", lb.Facts[0].MonthKey)
	assert.Equal(t, "2026-02", lb.Facts[1].MonthKey)
}

func TestClean_MissingColumn(t *testing.T) {
	t.Parallel()

	grid := model.Grid{{"月份", "門市", "毛利"}}
	_, err := NewLeaderboardCleaner(DefaultLeaderboardColumns(), nil).Clean(grid)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "人員")

	_, err = NewLeaderboardCleaner(DefaultLeaderboardColumns(), nil).Clean(model.Grid{})
	assert.True(t, errors.Is(err, ErrMalformedSheet))
}

func TestClean_CustomColumnNames(t *testing.T) {
	t.Parallel()

	grid := model.Grid{
		{"Month", "Store ", "Staff", "GP", "", "GP"},
		{"2026/3", "East", "amy", "3", "x", "9"},
	}
	cols := LeaderboardColumns{Month: "Month", Store: "Store", Person: "Staff"}
	lb, err := NewLeaderboardCleaner(cols, nil).Clean(grid)
	require.NoError(t, err)
	require.Len(t, lb.Facts, 1)
	assert.Equal(t, []string{"GP"}, lb.Metrics)
	assert.Equal(t, 3.0, lb.Facts[0].Metric("GP"))
	assert.Equal(t, "2026-03", lb.Facts[0].MonthKey)
}

func TestCanonicalMonth(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"2026-01":             "2026-01",
		"2026-1":              "2026-01",
		"2026/01":             "2026-01",
		"2026/1/15":           "2026-01",
		"2026-01-15":          "2026-01",
		"2026.03":             "2026-03",
		"2026年3月":             "2026-03",
		"Mar 2026":            "2026-03",
		"2026-01-02 10:00:00": "2026-01",
		"46023":               "2026-01",
	}
	for in, want := range cases {
		got, ok := CanonicalMonth(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "nan", "1", "上個月", "2026-13"} {
		_, ok := CanonicalMonth(in)
		assert.False(t, ok, in)
	}
}
