package srs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHistory(id string, qualities ...Quality) ReviewRecord {
	r := NewRecord(id, day("2024-01-01"))
	for i, q := range qualities {
		r.History = append(r.History, Review{Quality: q, Date: day("2024-01-01").AddDate(0, 0, i)})
	}
	if len(qualities) > 0 {
		last := r.History[len(r.History)-1].Date
		r.LastReviewed = &last
	}
	return r
}

func TestWordsKnownAndDifficult(t *testing.T) {
	records := []ReviewRecord{
		{ItemID: "known", RepetitionCount: 3, EasinessFactor: 2.1},
		{ItemID: "edge-ef", RepetitionCount: 5, EasinessFactor: 2.0},
		{ItemID: "young", RepetitionCount: 2, EasinessFactor: 2.6},
		{ItemID: "hard", RepetitionCount: 0, EasinessFactor: 1.5},
		{ItemID: "borderline", RepetitionCount: 4, EasinessFactor: 1.8},
		{ItemID: "also-known", RepetitionCount: 4, EasinessFactor: 2.5},
	}

	assert.Equal(t, []string{"also-known", "known"}, WordsKnown(records))
	assert.Equal(t, []string{"hard"}, WordsDifficult(records))
	assert.Empty(t, WordsKnown(nil))
}

func TestRecentPerformance(t *testing.T) {
	_, ok := RecentPerformance(NewRecord("a", day("2024-01-01")), 5)
	assert.False(t, ok)

	r := withHistory("a", 0, 0, 5, 4, 3, 5, 3)
	avg, ok := RecentPerformance(r, 5)
	require.True(t, ok)
	assert.InDelta(t, 4.0, avg, 1e-9)

	avg, ok = RecentPerformance(r, 0)
	require.True(t, ok)
	assert.InDelta(t, 4.0, avg, 1e-9, "0 以下は既定の 5 件")

	avg, _ = RecentPerformance(withHistory("b", 2, 3), 5)
	assert.InDelta(t, 2.5, avg, 1e-9)
}

func TestLearnerTrend(t *testing.T) {
	a := withHistory("a", 1, 1, 1)    // 1/1, 1/2, 1/3
	b := withHistory("b", 5, 5, 5, 5) // 1/1 .. 1/4
	c := withHistory("c")

	avg, ok := LearnerTrend([]ReviewRecord{c, b, a}, 3)
	require.True(t, ok)
	// 直近3件: a@1/3(1), b@1/3(5), b@1/4(5)
	assert.InDelta(t, 11.0/3.0, avg, 1e-9)

	_, ok = LearnerTrend([]ReviewRecord{c}, 5)
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	asOf := day("2024-01-10")
	fresh := NewRecord("fresh", asOf)
	learning := withHistory("learning", 4)
	learning.RepetitionCount = 1
	learning.DueDate = day("2024-01-20")
	mature := withHistory("mature", 5, 5, 5)
	mature.RepetitionCount = 3
	mature.EasinessFactor = 2.8
	mature.DueDate = day("2024-01-09")
	lapsed := withHistory("lapsed", 1)
	lapsed.EasinessFactor = 1.7
	lapsed.DueDate = day("2024-01-02")

	s := Summarize([]ReviewRecord{fresh, learning, mature, lapsed}, asOf, 5)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.Due)
	assert.Equal(t, 1, s.New)
	assert.Equal(t, 2, s.Learning)
	assert.Equal(t, 1, s.Review)
	assert.Equal(t, 1, s.Known)
	assert.Equal(t, 1, s.Difficult)
	assert.Equal(t, 5, s.Reviews)
	require.NotNil(t, s.Trend)
	assert.InDelta(t, 4.0, *s.Trend, 1e-9)
}
