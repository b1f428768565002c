package srs

import (
	"fmt"
	"math"
)

// Quality は想起の自己評価 (0〜5) です。3 以上が合格。
type Quality int

const (
	QualityBlackout Quality = iota // 全く思い出せない
	QualityWrong                   // 不正解
	QualityFamiliar                // 不正解だが見覚えはある
	QualityHard                    // 正解 (かなり苦労した)
	QualityGood                    // 正解 (少し迷った)
	QualityPerfect                 // 即答
)

// PassingQuality 未満の評価はラプスとして扱う
const PassingQuality = QualityHard

var qualityNames = [...]string{
	QualityBlackout: "blackout",
	QualityWrong:    "wrong",
	QualityFamiliar: "familiar",
	QualityHard:     "hard",
	QualityGood:     "good",
	QualityPerfect:  "perfect",
}

var _ fmt.Stringer = Quality(0)

func (q Quality) String() string {
	if q.IsValid() {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// IsValid は q が 0〜5 の範囲にあるかを返します。
func (q Quality) IsValid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// Passed は復習が成功扱いかどうかを返します。
func (q Quality) Passed() bool {
	return q >= PassingQuality
}

// ParseQuality は JSON の数値などから Quality を作ります。
// 小数や範囲外の値は InvalidQualityError になります。
func ParseQuality(v float64) (Quality, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, &InvalidQualityError{Value: v}
	}
	if v < float64(QualityBlackout) || v > float64(QualityPerfect) {
		return 0, &InvalidQualityError{Value: v}
	}
	return Quality(v), nil
}
