package srs

import (
	"fmt"
	"math"
	"time"
)

// SM-2 の初期値と下限
const (
	DefaultEasiness = 2.5
	MinEasiness     = 1.3
)

// Review は review_history の 1 件です。
type Review struct {
	Quality Quality
	Date    time.Time
}

// ReviewRecord は (学習者, 語彙) ごとの復習状態です。
// 日付はすべて DateOf で正規化された暦日 (UTC 0 時) を持ちます。
type ReviewRecord struct {
	ItemID          string
	EasinessFactor  float64
	RepetitionCount int
	IntervalDays    int
	DueDate         time.Time
	LastReviewed    *time.Time // 未復習なら nil
	History         []Review
}

// NewRecord は初回接触時のレコードを返します。asOf の日から復習対象になります。
func NewRecord(itemID string, asOf time.Time) ReviewRecord {
	return ReviewRecord{
		ItemID:         itemID,
		EasinessFactor: DefaultEasiness,
		DueDate:        DateOf(asOf),
		History:        []Review{},
	}
}

// DateOf は t のロケーションにおける暦日を UTC 0 時として返します。
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Reviewed は一度でも復習されたかを返します。
func (r ReviewRecord) Reviewed() bool {
	return r.LastReviewed != nil
}

// IsDue は asOf の日に復習対象かどうかを返します。
func (r ReviewRecord) IsDue(asOf time.Time) bool {
	return !DateOf(asOf).Before(DateOf(r.DueDate))
}

// clone はスライスとポインタを複製したコピーを返します。
func (r ReviewRecord) clone() ReviewRecord {
	out := r
	if r.LastReviewed != nil {
		v := *r.LastReviewed
		out.LastReviewed = &v
	}
	out.History = make([]Review, len(r.History), len(r.History)+1)
	copy(out.History, r.History)
	return out
}

// Clone は呼び出し側と状態を共有しないコピーを返します。
func (r ReviewRecord) Clone() ReviewRecord {
	return r.clone()
}

// Validate は読み込んだレコードが不変条件を満たすか検査します。
func Validate(r ReviewRecord) error {
	invalid := func(field, reason string) error {
		return &InvalidRecordError{ItemID: r.ItemID, Field: field, Reason: reason}
	}

	if r.ItemID == "" {
		return invalid("item_id", "missing")
	}
	if math.IsNaN(r.EasinessFactor) || math.IsInf(r.EasinessFactor, 0) {
		return invalid("easiness_factor", "not a finite number")
	}
	if r.EasinessFactor < MinEasiness {
		return invalid("easiness_factor", fmt.Sprintf("%v is below the floor %v", r.EasinessFactor, MinEasiness))
	}
	if r.RepetitionCount < 0 {
		return invalid("repetition_count", fmt.Sprintf("negative value %d", r.RepetitionCount))
	}
	if r.IntervalDays < 0 {
		return invalid("interval_days", fmt.Sprintf("negative value %d", r.IntervalDays))
	}
	if r.DueDate.IsZero() {
		return invalid("due_date", "missing")
	}
	if DateOf(r.DueDate).After(MaxDate) {
		return invalid("due_date", "after 9999-12-31")
	}
	if r.LastReviewed != nil && r.LastReviewed.IsZero() {
		return invalid("last_reviewed", "zero date")
	}
	if r.LastReviewed != nil && DateOf(*r.LastReviewed).After(MaxDate) {
		return invalid("last_reviewed", "after 9999-12-31")
	}
	for i, h := range r.History {
		if !h.Quality.IsValid() {
			return invalid(fmt.Sprintf("review_history[%d].performance", i), fmt.Sprintf("%d is outside 0..5", int(h.Quality)))
		}
		if h.Date.IsZero() {
			return invalid(fmt.Sprintf("review_history[%d].date", i), "missing")
		}
	}
	return nil
}
