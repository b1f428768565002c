package srs

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// 設定に関係なく適用される上限。due_date を YYYY-MM-DD で書けるようにする
const MaxIntervalDays = 36500

// MaxDate は 4 桁の年で表せる最後の暦日です。
var MaxDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// Config は Scheduler の設定です。ゼロ値は標準の SM-2 と同じ動作になります。
type Config struct {
	// MaxIntervalDays は復習間隔の上限 (日)。0 なら MaxIntervalDays のみ適用。
	MaxIntervalDays int
}

// Scheduler は SM-2 の更新規則を適用します。状態を持たないので並行利用できます。
type Scheduler struct {
	maxInterval int
}

var defaultScheduler = &Scheduler{}

// NewScheduler は設定を検証して Scheduler を返します。
func NewScheduler(cfg Config) (*Scheduler, error) {
	if cfg.MaxIntervalDays < 0 {
		return nil, fmt.Errorf("%w: max interval %d must not be negative", ErrInvalidConfig, cfg.MaxIntervalDays)
	}
	return &Scheduler{maxInterval: cfg.MaxIntervalDays}, nil
}

// RecordReview は標準設定の Scheduler で復習結果を適用します。
func RecordReview(r ReviewRecord, q Quality, reviewDate time.Time) (ReviewRecord, error) {
	return defaultScheduler.RecordReview(r, q, reviewDate)
}

// DueItems は asOf の日に復習対象となる item_id を返します。
func DueItems(records []ReviewRecord, asOf time.Time) []string {
	return defaultScheduler.DueItems(records, asOf)
}

// ResetItem は履歴を破棄した初期レコードを返します。
func ResetItem(itemID string, asOf time.Time) ReviewRecord {
	return NewRecord(itemID, asOf)
}

// IsOutOfOrder は reviewDate が最終復習日より前かどうかを返します。
// RecordReview はこの場合を同日の復習として扱います。
func IsOutOfOrder(r ReviewRecord, reviewDate time.Time) bool {
	return r.LastReviewed != nil && DateOf(reviewDate).Before(DateOf(*r.LastReviewed))
}

// NextEasiness は SM-2 の易しさ係数の更新式です (下限 1.3)。
func NextEasiness(ef float64, q Quality) float64 {
	d := float64(QualityPerfect - q)
	next := ef + (0.1 - d*(0.08+d*0.02))
	return math.Max(next, MinEasiness)
}

// RecordReview は r に評価 q を適用した新しいレコードを返します。r 自体は変更しません。
func (s *Scheduler) RecordReview(r ReviewRecord, q Quality, reviewDate time.Time) (ReviewRecord, error) {
	if !q.IsValid() {
		return ReviewRecord{}, &InvalidQualityError{Value: float64(q)}
	}

	day := DateOf(reviewDate)
	if IsOutOfOrder(r, day) {
		day = DateOf(*r.LastReviewed)
	}
	if day.After(MaxDate) {
		day = MaxDate
	}

	next := r.clone()
	next.EasinessFactor = NextEasiness(r.EasinessFactor, q)

	if !q.Passed() {
		next.RepetitionCount = 0
		next.IntervalDays = 1
	} else {
		next.RepetitionCount = r.RepetitionCount + 1
		switch next.RepetitionCount {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = s.scaleInterval(r.IntervalDays, next.EasinessFactor)
		}
	}
	if limit := s.intervalLimit(); next.IntervalDays > limit {
		next.IntervalDays = limit
	}

	next.LastReviewed = &day
	next.DueDate = day.AddDate(0, 0, next.IntervalDays)
	if next.DueDate.After(MaxDate) {
		next.DueDate = MaxDate
		next.IntervalDays = int(MaxDate.Sub(day) / (24 * time.Hour))
	}
	next.History = append(next.History, Review{Quality: q, Date: day})

	return next, nil
}

func (s *Scheduler) intervalLimit() int {
	if s.maxInterval > 0 && s.maxInterval < MaxIntervalDays {
		return s.maxInterval
	}
	return MaxIntervalDays
}

// scaleInterval は prev*ef を丸めます。int に変換する前に上限で打ち切る
func (s *Scheduler) scaleInterval(prev int, ef float64) int {
	v := math.Round(float64(prev) * ef)
	if limit := float64(s.intervalLimit()); v > limit {
		return int(limit)
	}
	return int(v)
}

// DueItems は due_date <= asOf のレコードを、期限の古い順・item_id 昇順で返します。
func (s *Scheduler) DueItems(records []ReviewRecord, asOf time.Time) []string {
	due := make([]ReviewRecord, 0, len(records))
	for _, r := range records {
		if r.IsDue(asOf) {
			due = append(due, r)
		}
	}
	SortByDue(due)

	ids := make([]string, len(due))
	for i, r := range due {
		ids[i] = r.ItemID
	}
	return ids
}

// SortByDue は期限の古い順、同日なら item_id 昇順に並べ替えます。
func SortByDue(records []ReviewRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		di, dj := DateOf(records[i].DueDate), DateOf(records[j].DueDate)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return records[i].ItemID < records[j].ItemID
	})
}

// Records は item_id をキーとするマップをスライスに変換します。キーが ItemID として使われます。
func Records(m map[string]ReviewRecord) []ReviewRecord {
	out := make([]ReviewRecord, 0, len(m))
	for id, r := range m {
		r.ItemID = id
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}
