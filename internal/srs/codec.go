package srs

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// StateKey はフロントエンドの localStorage で使われているキー名です。
const StateKey = "macrobius_srs_data"

const dateLayout = "2006-01-02"

type wireReview struct {
	Performance *float64 `json:"performance"`
	Date        *string  `json:"date"`
}

type wireRecord struct {
	EasinessFactor  *float64     `json:"easiness_factor"`
	RepetitionCount *float64     `json:"repetition_count"`
	IntervalDays    *float64     `json:"interval_days"`
	DueDate         *string      `json:"due_date"`
	LastReviewed    *string      `json:"last_reviewed,omitempty"`
	ReviewHistory   []wireReview `json:"review_history"`
}

// FormatDate は暦日を YYYY-MM-DD で返します。
func FormatDate(t time.Time) string {
	return DateOf(t).Format(dateLayout)
}

// ParseDate は YYYY-MM-DD か RFC 3339 の文字列を暦日として読み取ります。
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("not an ISO date: %q", s)
	}
	return DateOf(t), nil
}

// EncodeState は学習者の状態を macrobius_srs_data 形式の JSON にします。
func EncodeState(records map[string]ReviewRecord) ([]byte, error) {
	out := make(map[string]wireRecord, len(records))
	for id, r := range records {
		r.ItemID = id
		if err := Validate(r); err != nil {
			return nil, err
		}
		out[id] = toWire(r)
	}
	return json.Marshal(out)
}

// DecodeState は macrobius_srs_data 形式の JSON を読み取ります。
// 不正なレコードがあれば、補正せずに *InvalidRecordError を返します。
func DecodeState(data []byte) (map[string]ReviewRecord, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &InvalidRecordError{Reason: fmt.Sprintf("malformed state: %v", err)}
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make(map[string]ReviewRecord, len(raw))
	for _, id := range ids {
		r, err := decodeRecord(id, raw[id])
		if err != nil {
			return nil, err
		}
		records[id] = r
	}
	return records, nil
}

func toWire(r ReviewRecord) wireRecord {
	ef := r.EasinessFactor
	rep := float64(r.RepetitionCount)
	interval := float64(r.IntervalDays)
	due := FormatDate(r.DueDate)

	w := wireRecord{
		EasinessFactor:  &ef,
		RepetitionCount: &rep,
		IntervalDays:    &interval,
		DueDate:         &due,
		ReviewHistory:   make([]wireReview, len(r.History)),
	}
	if r.LastReviewed != nil {
		last := FormatDate(*r.LastReviewed)
		w.LastReviewed = &last
	}
	for i, h := range r.History {
		p := float64(h.Quality)
		d := FormatDate(h.Date)
		w.ReviewHistory[i] = wireReview{Performance: &p, Date: &d}
	}
	return w
}

func decodeRecord(id string, data json.RawMessage) (ReviewRecord, error) {
	invalid := func(field, reason string) error {
		return &InvalidRecordError{ItemID: id, Field: field, Reason: reason}
	}

	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return ReviewRecord{}, invalid("", fmt.Sprintf("malformed record: %v", err))
	}

	if w.EasinessFactor == nil {
		return ReviewRecord{}, invalid("easiness_factor", "missing")
	}
	rep, err := requiredInt(w.RepetitionCount)
	if err != nil {
		return ReviewRecord{}, invalid("repetition_count", err.Error())
	}
	interval, err := requiredInt(w.IntervalDays)
	if err != nil {
		return ReviewRecord{}, invalid("interval_days", err.Error())
	}
	if w.DueDate == nil {
		return ReviewRecord{}, invalid("due_date", "missing")
	}
	due, err := ParseDate(*w.DueDate)
	if err != nil {
		return ReviewRecord{}, invalid("due_date", err.Error())
	}

	r := ReviewRecord{
		ItemID:          id,
		EasinessFactor:  *w.EasinessFactor,
		RepetitionCount: rep,
		IntervalDays:    interval,
		DueDate:         due,
	}
	if w.LastReviewed != nil {
		last, err := ParseDate(*w.LastReviewed)
		if err != nil {
			return ReviewRecord{}, invalid("last_reviewed", err.Error())
		}
		r.LastReviewed = &last
	}
	history, err := decodeHistory(id, w.ReviewHistory)
	if err != nil {
		return ReviewRecord{}, err
	}
	r.History = history

	if err := Validate(r); err != nil {
		return ReviewRecord{}, err
	}
	return r, nil
}

func decodeHistory(id string, entries []wireReview) ([]Review, error) {
	history := make([]Review, 0, len(entries))
	for i, h := range entries {
		field := fmt.Sprintf("review_history[%d]", i)
		if h.Performance == nil {
			return nil, &InvalidRecordError{ItemID: id, Field: field + ".performance", Reason: "missing"}
		}
		q, err := ParseQuality(*h.Performance)
		if err != nil {
			return nil, &InvalidRecordError{ItemID: id, Field: field + ".performance", Reason: err.Error()}
		}
		if h.Date == nil {
			return nil, &InvalidRecordError{ItemID: id, Field: field + ".date", Reason: "missing"}
		}
		d, err := ParseDate(*h.Date)
		if err != nil {
			return nil, &InvalidRecordError{ItemID: id, Field: field + ".date", Reason: err.Error()}
		}
		history = append(history, Review{Quality: q, Date: d})
	}
	return history, nil
}

// MarshalHistory は review_history だけを JSON にします。DB の JSON カラムで使います。
func MarshalHistory(history []Review) ([]byte, error) {
	return json.Marshal(toWire(ReviewRecord{History: history}).ReviewHistory)
}

// UnmarshalHistory は MarshalHistory の逆変換です。不正な値は *InvalidRecordError になります。
func UnmarshalHistory(itemID string, data []byte) ([]Review, error) {
	if len(data) == 0 {
		return []Review{}, nil
	}
	var entries []wireReview
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &InvalidRecordError{ItemID: itemID, Field: "review_history", Reason: fmt.Sprintf("malformed history: %v", err)}
	}
	return decodeHistory(itemID, entries)
}

func requiredInt(v *float64) (int, error) {
	if v == nil {
		return 0, errors.New("missing")
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v != math.Trunc(*v) {
		return 0, fmt.Errorf("%v is not an integer", *v)
	}
	if *v > math.MaxInt32 || *v < math.MinInt32 {
		return 0, fmt.Errorf("%v is out of range", *v)
	}
	return int(*v), nil
}
