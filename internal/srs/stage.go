package srs

import "fmt"

// Stage は語彙ごとの学習段階です。
type Stage int

const (
	StageNew      Stage = iota // 未復習
	StageLearning              // 連続成功 0〜2 回
	StageReview                // 連続成功 3 回以上
	StageLapsed                // 失敗した直後のみ (永続化されない)
)

// ReviewStageRepetitions 回連続で成功すると Review 段階になる
const ReviewStageRepetitions = 3

var stageNames = [...]string{
	StageNew:      "new",
	StageLearning: "learning",
	StageReview:   "review",
	StageLapsed:   "lapsed",
}

func (s Stage) String() string {
	if s >= StageNew && s <= StageLapsed {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// MarshalText はステージ名で JSON に出力するためのものです。
func (s Stage) MarshalText() ([]byte, error) {
	if s < StageNew || s > StageLapsed {
		return nil, fmt.Errorf("srs: unknown stage %d", int(s))
	}
	return []byte(stageNames[s]), nil
}

// StageOf は保存されたレコードの段階を返します。Lapsed は返しません。
func StageOf(r ReviewRecord) Stage {
	switch {
	case !r.Reviewed():
		return StageNew
	case r.RepetitionCount >= ReviewStageRepetitions:
		return StageReview
	default:
		return StageLearning
	}
}

// StageAfter は復習直後の段階を返します。失敗した復習は Lapsed と分類されます。
func StageAfter(q Quality, updated ReviewRecord) Stage {
	if !q.Passed() {
		return StageLapsed
	}
	return StageOf(updated)
}
