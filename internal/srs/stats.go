package srs

import (
	"sort"
	"time"
)

// ダッシュボード用の判定基準 (固定値)
const (
	KnownMinRepetitions  = 3
	KnownMinEasiness     = 2.0
	DifficultMaxEasiness = 1.8
	DefaultTrendWindow   = 5
)

// IsKnown は「覚えた語」の判定です。
func IsKnown(r ReviewRecord) bool {
	return r.RepetitionCount >= KnownMinRepetitions && r.EasinessFactor > KnownMinEasiness
}

// IsDifficult は「苦手な語」の判定です。
func IsDifficult(r ReviewRecord) bool {
	return r.EasinessFactor < DifficultMaxEasiness
}

// WordsKnown は覚えた語の item_id を昇順で返します。
func WordsKnown(records []ReviewRecord) []string {
	return filterIDs(records, IsKnown)
}

// WordsDifficult は苦手な語の item_id を昇順で返します。
func WordsDifficult(records []ReviewRecord) []string {
	return filterIDs(records, IsDifficult)
}

func filterIDs(records []ReviewRecord, keep func(ReviewRecord) bool) []string {
	ids := []string{}
	for _, r := range records {
		if keep(r) {
			ids = append(ids, r.ItemID)
		}
	}
	sort.Strings(ids)
	return ids
}

// RecentPerformance は直近 n 件の評価の平均を返します。履歴が無ければ ok=false。
func RecentPerformance(r ReviewRecord, n int) (avg float64, ok bool) {
	return meanOfLast(r.History, n)
}

// LearnerTrend は学習者の全語彙を通した直近 n 件の評価の平均を返します。
// 同じ日の復習は item_id 順、同じ語の中では記録順に並べます。
func LearnerTrend(records []ReviewRecord, n int) (avg float64, ok bool) {
	type entry struct {
		itemID string
		seq    int
		review Review
	}
	var all []entry
	for _, r := range records {
		for i, h := range r.History {
			all = append(all, entry{itemID: r.ItemID, seq: i, review: h})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if !a.review.Date.Equal(b.review.Date) {
			return a.review.Date.Before(b.review.Date)
		}
		if a.itemID != b.itemID {
			return a.itemID < b.itemID
		}
		return a.seq < b.seq
	})

	history := make([]Review, len(all))
	for i, e := range all {
		history[i] = e.review
	}
	return meanOfLast(history, n)
}

func meanOfLast(history []Review, n int) (float64, bool) {
	if n <= 0 {
		n = DefaultTrendWindow
	}
	if len(history) == 0 {
		return 0, false
	}
	if len(history) > n {
		history = history[len(history)-n:]
	}
	sum := 0
	for _, h := range history {
		sum += int(h.Quality)
	}
	return float64(sum) / float64(len(history)), true
}

// Summary は学習者ごとの集計です。
type Summary struct {
	Total     int      `json:"total"`
	Due       int      `json:"due"`
	New       int      `json:"new"`
	Learning  int      `json:"learning"`
	Review    int      `json:"review"`
	Known     int      `json:"known"`
	Difficult int      `json:"difficult"`
	Reviews   int      `json:"reviews"`
	Trend     *float64 `json:"trend,omitempty"`
}

// Summarize は asOf 時点の集計を返します。trendWindow が 0 以下なら 5 件で計算します。
func Summarize(records []ReviewRecord, asOf time.Time, trendWindow int) Summary {
	var s Summary
	s.Total = len(records)
	for _, r := range records {
		if r.IsDue(asOf) {
			s.Due++
		}
		switch StageOf(r) {
		case StageNew:
			s.New++
		case StageLearning:
			s.Learning++
		case StageReview:
			s.Review++
		}
		if IsKnown(r) {
			s.Known++
		}
		if IsDifficult(r) {
			s.Difficult++
		}
		s.Reviews += len(r.History)
	}
	if avg, ok := LearnerTrend(records, trendWindow); ok {
		s.Trend = &avg
	}
	return s
}
