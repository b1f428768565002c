//go:generate mockery --name RecordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordRepository は review_records テーブルを扱います。トランザクションは呼び出し側が管理します
type RecordRepository interface {
	FindByItem(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, itemID string, forUpdate bool) (*model.ReviewRecordRow, error)
	FindAllByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) ([]*model.ReviewRecordRow, error)
	InsertIfAbsent(ctx context.Context, tx *gorm.DB, row *model.ReviewRecordRow) (bool, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *model.ReviewRecordRow) error
	DeleteByItem(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, itemID string) error
	DeleteAllByLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) error
}

type gormRecordRepository struct{}

func NewGormRecordRepository() RecordRepository {
	return &gormRecordRepository{}
}

// FindByItem は 1 件取得します。forUpdate なら PostgreSQL では行ロックを取ります
// (SQLite はトランザクション自体が書き込みを直列化するのでロック句は付けない)
func (r *gormRecordRepository) FindByItem(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, itemID string, forUpdate bool) (*model.ReviewRecordRow, error) {
	logger := middleware.GetLogger(ctx)
	var row model.ReviewRecordRow

	query := db.WithContext(ctx)
	if forUpdate && !IsSQLite(db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	result := query.Where("learner_id = ? AND item_id = ?", learnerID, itemID).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding review record in DB",
			"error", result.Error,
			"learner_id", learnerID.String(),
			"item_id", itemID,
		)
		return nil, fmt.Errorf("gormRecordRepository.FindByItem: %w", result.Error)
	}
	return &row, nil
}

func (r *gormRecordRepository) FindAllByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) ([]*model.ReviewRecordRow, error) {
	logger := middleware.GetLogger(ctx)
	var rows []*model.ReviewRecordRow

	result := db.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("item_id ASC").
		Find(&rows)
	if result.Error != nil {
		logger.Error("Error finding review records by learner in DB", "error", result.Error, "learner_id", learnerID.String())
		return nil, fmt.Errorf("gormRecordRepository.FindAllByLearner: %w", result.Error)
	}
	return rows, nil
}

// InsertIfAbsent は行が無ければ作成します。既にあれば何もせず false を返します。
// PostgreSQL では他トランザクションが同じキーを挿入中ならそのコミットを待ちます
func (r *gormRecordRepository) InsertIfAbsent(ctx context.Context, tx *gorm.DB, row *model.ReviewRecordRow) (bool, error) {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "learner_id"}, {Name: "item_id"}},
		DoNothing: true,
	}).Create(row)
	if result.Error != nil {
		logger.Error("Error inserting review record in DB",
			"error", result.Error,
			"learner_id", row.LearnerID.String(),
			"item_id", row.ItemID,
		)
		return false, fmt.Errorf("gormRecordRepository.InsertIfAbsent: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Upsert は (learner_id, item_id) をキーに作成または全カラム更新します
func (r *gormRecordRepository) Upsert(ctx context.Context, tx *gorm.DB, row *model.ReviewRecordRow) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "learner_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"easiness_factor", "repetition_count", "interval_days",
			"due_date", "last_reviewed", "review_history", "updated_at",
		}),
	}).Create(row)
	if result.Error != nil {
		logger.Error("Error upserting review record in DB",
			"error", result.Error,
			"learner_id", row.LearnerID.String(),
			"item_id", row.ItemID,
		)
		return fmt.Errorf("gormRecordRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormRecordRepository) DeleteByItem(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, itemID string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("learner_id = ? AND item_id = ?", learnerID, itemID).Delete(&model.ReviewRecordRow{})
	if result.Error != nil {
		logger.Error("Error deleting review record in DB", "error", result.Error, "learner_id", learnerID.String(), "item_id", itemID)
		return fmt.Errorf("gormRecordRepository.DeleteByItem: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormRecordRepository) DeleteAllByLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("learner_id = ?", learnerID).Delete(&model.ReviewRecordRow{})
	if result.Error != nil {
		logger.Error("Error deleting review records by learner in DB", "error", result.Error, "learner_id", learnerID.String())
		return fmt.Errorf("gormRecordRepository.DeleteAllByLearner: %w", result.Error)
	}
	logger.Debug("Review records deleted", "learner_id", learnerID.String(), "count", result.RowsAffected)
	return nil
}
