// internal/model/vocabulary.go
package model

import "time"

// VocabularyItem はラテン語の単語または短い句です。作成後は変更しません
type VocabularyItem struct {
	ItemID    string    `gorm:"primaryKey;size:128" json:"item_id"`
	Text      string    `gorm:"not null;uniqueIndex" json:"text"` // ラテン語の表記
	GlossEN   string    `json:"gloss_en,omitempty"`
	GlossDE   string    `json:"gloss_de,omitempty"`
	Source    string    `json:"source,omitempty"` // 出典 (例: Sat. 1.2.3)
	CreatedAt time.Time `json:"created_at"`
}

func (VocabularyItem) TableName() string {
	return "vocabulary_items"
}

// 語彙作成リクエストDTO
type CreateVocabularyRequest struct {
	ItemID  string `json:"item_id,omitempty" validate:"omitempty,max=128"`
	Text    string `json:"text" validate:"required,max=200"`
	GlossEN string `json:"gloss_en,omitempty" validate:"omitempty,max=500"`
	GlossDE string `json:"gloss_de,omitempty" validate:"omitempty,max=500"`
	Source  string `json:"source,omitempty" validate:"omitempty,max=200"`
}

// ListVocabularyParams は一覧取得のページング条件
type ListVocabularyParams struct {
	Limit  int
	Offset int
}

// ImportRowError は取り込めなかった行の情報 (行番号はヘッダーを 1 とする)
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult は一括取り込みの結果
type ImportResult struct {
	Created int              `json:"created"`
	Skipped int              `json:"skipped"`
	Errors  []ImportRowError `json:"errors"`
}
