// internal/model/record.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReviewRecordRow は (学習者, 語彙) ごとの復習状態の永続化形式です
type ReviewRecordRow struct {
	LearnerID       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ItemID          string         `gorm:"primaryKey;size:128"`
	EasinessFactor  float64        `gorm:"not null"`
	RepetitionCount int            `gorm:"not null"`
	IntervalDays    int            `gorm:"not null"`
	DueDate         time.Time      `gorm:"type:date;not null;index"`
	LastReviewed    *time.Time     `gorm:"type:date"`
	ReviewHistory   datatypes.JSON `gorm:"not null"` // [{performance, date}]
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ReviewRecordRow) TableName() string {
	return "review_records"
}
