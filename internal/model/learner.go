package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 学習者の基本情報
type Learner struct {
	LearnerID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"learner_id"`
	Name            string         `gorm:"unique;not null" json:"name"`
	Email           string         `gorm:"unique;not null" json:"email"`
	PasswordHash    string         `gorm:"not null" json:"-"`
	Locale          string         `gorm:"not null;default:'de'" json:"locale"`
	ReminderEnabled bool           `gorm:"not null;default:false" json:"reminder_enabled"`
	LastRemindedOn  *time.Time     `gorm:"type:date" json:"-"` // 同じ日に二度通知しないため
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Learner) TableName() string {
	return "learners"
}

type ContextKey string

const (
	LearnerIDKey ContextKey = "learnerID"
)

// サポートする表示言語
const (
	LocaleGerman  = "de"
	LocaleEnglish = "en"
	LocaleLatin   = "la"
)

// RegisterRequest は新規登録APIのリクエストボディ (DTO)
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Locale   string `json:"locale,omitempty" validate:"omitempty,oneof=de en la"`
}

// UpdatePreferencesRequest は学習者設定の部分更新リクエスト
type UpdatePreferencesRequest struct {
	Locale          *string `json:"locale,omitempty" validate:"omitempty,oneof=de en la"`
	ReminderEnabled *bool   `json:"reminder_enabled,omitempty"`
}

// LearnerResponse はクライアントに返す学習者情報
type LearnerResponse struct {
	LearnerID       uuid.UUID `json:"learner_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Locale          string    `json:"locale"`
	ReminderEnabled bool      `json:"reminder_enabled"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToResponse はパスワードハッシュを除いたレスポンスに変換します
func (l *Learner) ToResponse() *LearnerResponse {
	return &LearnerResponse{
		LearnerID:       l.LearnerID,
		Name:            l.Name,
		Email:           l.Email,
		Locale:          l.Locale,
		ReminderEnabled: l.ReminderEnabled,
		CreatedAt:       l.CreatedAt,
	}
}
