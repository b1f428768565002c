//go:generate mockery --name LearnerRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearnerRepository interface {
	Create(ctx context.Context, db *gorm.DB, learner *model.Learner) error
	FindByID(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) (*model.Learner, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Learner, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Learner, error)
	Update(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, updates map[string]interface{}) error
	FindReminderRecipients(ctx context.Context, db *gorm.DB, day time.Time) ([]*model.Learner, error)
	MarkReminded(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, day time.Time) error
}

type gormLearnerRepository struct{}

func NewGormLearnerRepository() LearnerRepository {
	return &gormLearnerRepository{}
}

func (r *gormLearnerRepository) Create(ctx context.Context, db *gorm.DB, learner *model.Learner) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(learner)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			logger.Warn("Duplicate key error on create learner",
				"error", result.Error,
				"name", learner.Name,
				"email", learner.Email,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating learner in DB", "error", result.Error, "name", learner.Name)
		return fmt.Errorf("gormLearnerRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormLearnerRepository) FindByID(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) (*model.Learner, error) {
	return r.findOne(ctx, db, "FindByID", "learner_id = ?", learnerID)
}

func (r *gormLearnerRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Learner, error) {
	return r.findOne(ctx, db, "FindByName", "name = ?", name)
}

func (r *gormLearnerRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Learner, error) {
	return r.findOne(ctx, db, "FindByEmail", "email = ?", email)
}

func (r *gormLearnerRepository) findOne(ctx context.Context, db *gorm.DB, op, query string, arg interface{}) (*model.Learner, error) {
	logger := middleware.GetLogger(ctx)
	var learner model.Learner

	result := db.WithContext(ctx).Where(query, arg).First(&learner)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Debug("Learner not found", "op", op, "value", arg)
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding learner in DB", "op", op, "error", result.Error)
		return nil, fmt.Errorf("gormLearnerRepository.%s: %w", op, result.Error)
	}
	return &learner, nil
}

func (r *gormLearnerRepository) Update(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := db.WithContext(ctx).Model(&model.Learner{}).Where("learner_id = ?", learnerID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating learner in DB", "error", result.Error, "learner_id", learnerID.String())
		return fmt.Errorf("gormLearnerRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// FindReminderRecipients は通知を有効にしていて、day にまだ通知していない学習者を返します
func (r *gormLearnerRepository) FindReminderRecipients(ctx context.Context, db *gorm.DB, day time.Time) ([]*model.Learner, error) {
	logger := middleware.GetLogger(ctx)
	var learners []*model.Learner

	result := db.WithContext(ctx).
		Where("reminder_enabled = ?", true).
		Where("last_reminded_on IS NULL OR last_reminded_on < ?", day).
		Order("learner_id ASC").
		Find(&learners)
	if result.Error != nil {
		logger.Error("Error finding reminder recipients in DB", "error", result.Error)
		return nil, fmt.Errorf("gormLearnerRepository.FindReminderRecipients: %w", result.Error)
	}
	return learners, nil
}

func (r *gormLearnerRepository) MarkReminded(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, day time.Time) error {
	return r.Update(ctx, db, learnerID, map[string]interface{}{"last_reminded_on": day})
}
