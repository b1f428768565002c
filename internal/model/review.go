// internal/model/review.go
package model

import (
	"macrobius_srs/internal/srs"
)

// DueItemResponse は復習対象リストのレスポンスDTO
type DueItemResponse struct {
	ItemID          string  `json:"item_id"`
	Text            string  `json:"text"`
	GlossEN         string  `json:"gloss_en,omitempty"` // 正解表示用に含める
	GlossDE         string  `json:"gloss_de,omitempty"`
	Stage           string  `json:"stage"`
	DueDate         string  `json:"due_date"`
	IntervalDays    int     `json:"interval_days"`
	RepetitionCount int     `json:"repetition_count"`
	EasinessFactor  float64 `json:"easiness_factor"`
}

// SubmitReviewRequest は復習結果送信リクエストのDTO。quality は 0〜5 の整数
type SubmitReviewRequest struct {
	Quality    *float64 `json:"quality" validate:"required"`
	ReviewedOn string   `json:"reviewed_on,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ReviewEntryResponse は review_history の 1 件
type ReviewEntryResponse struct {
	Performance int    `json:"performance"`
	Date        string `json:"date"`
}

// ReviewRecordResponse は復習状態のレスポンスDTO
type ReviewRecordResponse struct {
	ItemID          string                `json:"item_id"`
	EasinessFactor  float64               `json:"easiness_factor"`
	RepetitionCount int                   `json:"repetition_count"`
	IntervalDays    int                   `json:"interval_days"`
	DueDate         string                `json:"due_date"`
	LastReviewed    *string               `json:"last_reviewed,omitempty"`
	Stage           string                `json:"stage"`
	ReviewHistory   []ReviewEntryResponse `json:"review_history"`
}

// ReviewResultResponse は復習結果送信後のレスポンス。stage は復習直後の分類 (lapsed を含む)
type ReviewResultResponse struct {
	Record     *ReviewRecordResponse `json:"record"`
	Stage      string                `json:"stage"`
	OutOfOrder bool                  `json:"out_of_order,omitempty"`
}

// StatsResponse はダッシュボード用の集計
type StatsResponse struct {
	srs.Summary
	KnownItems     []string `json:"known_items"`
	DifficultItems []string `json:"difficult_items"`
}

// NewReviewRecordResponse は srs.ReviewRecord をレスポンスDTOに変換します
func NewReviewRecordResponse(r srs.ReviewRecord) *ReviewRecordResponse {
	resp := &ReviewRecordResponse{
		ItemID:          r.ItemID,
		EasinessFactor:  r.EasinessFactor,
		RepetitionCount: r.RepetitionCount,
		IntervalDays:    r.IntervalDays,
		DueDate:         srs.FormatDate(r.DueDate),
		Stage:           srs.StageOf(r).String(),
		ReviewHistory:   make([]ReviewEntryResponse, len(r.History)),
	}
	if r.LastReviewed != nil {
		last := srs.FormatDate(*r.LastReviewed)
		resp.LastReviewed = &last
	}
	for i, h := range r.History {
		resp.ReviewHistory[i] = ReviewEntryResponse{Performance: int(h.Quality), Date: srs.FormatDate(h.Date)}
	}
	return resp
}
