package srs

import (
	"errors"
	"fmt"
)

// errors.Is で判定するためのセンチネルエラー
var (
	ErrInvalidQuality = errors.New("srs: invalid quality")
	ErrInvalidRecord  = errors.New("srs: invalid record")
	ErrInvalidConfig  = errors.New("srs: invalid scheduler config")
)

// InvalidQualityError は 0〜5 の整数でない評価値を表します。
type InvalidQualityError struct {
	Value float64
}

func (e *InvalidQualityError) Error() string {
	return fmt.Sprintf("srs: quality must be an integer between %d and %d, got %v", QualityBlackout, QualityPerfect, e.Value)
}

func (e *InvalidQualityError) Unwrap() error { return ErrInvalidQuality }

// InvalidRecordError は永続化された ReviewRecord の不整合を表します。
// 値の補正はしないので、呼び出し側が ResetItem するかどうかを決めます。
type InvalidRecordError struct {
	ItemID string
	Field  string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	switch {
	case e.ItemID != "" && e.Field != "":
		return fmt.Sprintf("srs: invalid record %q: %s: %s", e.ItemID, e.Field, e.Reason)
	case e.ItemID != "":
		return fmt.Sprintf("srs: invalid record %q: %s", e.ItemID, e.Reason)
	default:
		return fmt.Sprintf("srs: invalid record: %s", e.Reason)
	}
}

func (e *InvalidRecordError) Unwrap() error { return ErrInvalidRecord }
