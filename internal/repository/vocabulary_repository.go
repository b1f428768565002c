//go:generate mockery --name VocabularyRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VocabularyRepository は語彙 (全学習者で共有) の永続化を扱います。語彙は作成後に変更しません
type VocabularyRepository interface {
	Create(ctx context.Context, tx *gorm.DB, item *model.VocabularyItem) error
	FindByID(ctx context.Context, db *gorm.DB, itemID string) (*model.VocabularyItem, error)
	FindByIDs(ctx context.Context, db *gorm.DB, itemIDs []string) (map[string]*model.VocabularyItem, error)
	List(ctx context.Context, db *gorm.DB, params model.ListVocabularyParams) ([]*model.VocabularyItem, int64, error)
	ExistsByText(ctx context.Context, db *gorm.DB, text string) (bool, error)
	FindUnseen(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, limit int) ([]*model.VocabularyItem, error)
}

type gormVocabularyRepository struct{}

func NewGormVocabularyRepository() VocabularyRepository {
	return &gormVocabularyRepository{}
}

func (r *gormVocabularyRepository) Create(ctx context.Context, tx *gorm.DB, item *model.VocabularyItem) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(item)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			logger.Warn("Duplicate key error on create vocabulary item", "item_id", item.ItemID, "text", item.Text)
			return model.ErrConflict
		}
		logger.Error("Error creating vocabulary item in DB",
			"error", result.Error,
			"item_id", item.ItemID,
		)
		return fmt.Errorf("gormVocabularyRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormVocabularyRepository) FindByID(ctx context.Context, db *gorm.DB, itemID string) (*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx)
	var item model.VocabularyItem
	result := db.WithContext(ctx).Where("item_id = ?", itemID).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding vocabulary item by ID in DB", "error", result.Error, "item_id", itemID)
		return nil, fmt.Errorf("gormVocabularyRepository.FindByID: %w", result.Error)
	}
	return &item, nil
}

func (r *gormVocabularyRepository) FindByIDs(ctx context.Context, db *gorm.DB, itemIDs []string) (map[string]*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx)
	found := make(map[string]*model.VocabularyItem, len(itemIDs))
	if len(itemIDs) == 0 {
		return found, nil
	}

	var items []*model.VocabularyItem
	result := db.WithContext(ctx).Where("item_id IN ?", itemIDs).Find(&items)
	if result.Error != nil {
		logger.Error("Error finding vocabulary items by IDs in DB", "error", result.Error, "count", len(itemIDs))
		return nil, fmt.Errorf("gormVocabularyRepository.FindByIDs: %w", result.Error)
	}
	for _, item := range items {
		found[item.ItemID] = item
	}
	return found, nil
}

func (r *gormVocabularyRepository) List(ctx context.Context, db *gorm.DB, params model.ListVocabularyParams) ([]*model.VocabularyItem, int64, error) {
	logger := middleware.GetLogger(ctx)
	var total int64
	if err := db.WithContext(ctx).Model(&model.VocabularyItem{}).Count(&total).Error; err != nil {
		logger.Error("Error counting vocabulary items in DB", "error", err)
		return nil, 0, fmt.Errorf("gormVocabularyRepository.List: %w", err)
	}

	var items []*model.VocabularyItem
	result := db.WithContext(ctx).
		Order("item_id ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&items)
	if result.Error != nil {
		logger.Error("Error listing vocabulary items in DB", "error", result.Error)
		return nil, 0, fmt.Errorf("gormVocabularyRepository.List: %w", result.Error)
	}
	return items, total, nil
}

func (r *gormVocabularyRepository) ExistsByText(ctx context.Context, db *gorm.DB, text string) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.VocabularyItem{}).Where("text = ?", text).Count(&count)
	if result.Error != nil {
		logger.Error("Error checking vocabulary text existence in DB", "error", result.Error, "text", text)
		return false, fmt.Errorf("gormVocabularyRepository.ExistsByText: %w", result.Error)
	}
	return count > 0, nil
}

// FindUnseen は学習者の復習レコードがまだ無い語彙を item_id 順に返します
func (r *gormVocabularyRepository) FindUnseen(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, limit int) ([]*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx)
	var items []*model.VocabularyItem

	result := db.WithContext(ctx).
		Joins("LEFT JOIN review_records ON review_records.item_id = vocabulary_items.item_id AND review_records.learner_id = ?", learnerID).
		Where("review_records.item_id IS NULL").
		Order("vocabulary_items.item_id ASC").
		Limit(limit).
		Find(&items)
	if result.Error != nil {
		logger.Error("Error finding unseen vocabulary in DB", "error", result.Error, "learner_id", learnerID.String())
		return nil, fmt.Errorf("gormVocabularyRepository.FindUnseen: %w", result.Error)
	}
	return items, nil
}
