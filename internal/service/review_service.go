//go:generate mockery --name ReviewService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"time"

	"macrobius_srs/internal/config"
	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/model"
	"macrobius_srs/internal/repository"
	"macrobius_srs/internal/srs"
	"macrobius_srs/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewService は復習スケジュールの読み書きを担当します
type ReviewService interface {
	GetDueItems(ctx context.Context, learnerID uuid.UUID, asOf time.Time) ([]*model.DueItemResponse, error)
	GetNewItems(ctx context.Context, learnerID uuid.UUID) ([]*model.VocabularyItem, error)
	SubmitReview(ctx context.Context, learnerID uuid.UUID, itemID string, quality float64, reviewedOn time.Time) (*model.ReviewResultResponse, error)
	GetRecord(ctx context.Context, learnerID uuid.UUID, itemID string) (*model.ReviewRecordResponse, error)
	ResetItem(ctx context.Context, learnerID uuid.UUID, itemID string) (*model.ReviewRecordResponse, error)
	GetStats(ctx context.Context, learnerID uuid.UUID, asOf time.Time) (*model.StatsResponse, error)
	ExportState(ctx context.Context, learnerID uuid.UUID) ([]byte, error)
	ImportState(ctx context.Context, learnerID uuid.UUID, data []byte) (int, error)
}

type reviewService struct {
	db        *gorm.DB
	store     store.Store
	vocabRepo repository.VocabularyRepository
	scheduler *srs.Scheduler
	cfg       *config.Config
	now       func() time.Time
}

func NewReviewService(db *gorm.DB, st store.Store, vocabRepo repository.VocabularyRepository, scheduler *srs.Scheduler, cfg *config.Config) ReviewService {
	return &reviewService{
		db:        db,
		store:     st,
		vocabRepo: vocabRepo,
		scheduler: scheduler,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *reviewService) GetDueItems(ctx context.Context, learnerID uuid.UUID, asOf time.Time) ([]*model.DueItemResponse, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID)

	records, err := s.loadRecords(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	ids := s.scheduler.DueItems(srs.Records(records), asOf)
	if limit := s.cfg.App.ReviewLimit; limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	items, err := s.vocabRepo.FindByIDs(ctx, s.db, ids)
	if err != nil {
		logger.Error("Failed to find vocabulary for due items", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load due items.", "", err)
	}

	responses := make([]*model.DueItemResponse, 0, len(ids))
	for _, id := range ids {
		item, ok := items[id]
		if !ok {
			logger.Warn("Review record without vocabulary item, skipping", "item_id", id)
			continue
		}
		r := records[id]
		responses = append(responses, &model.DueItemResponse{
			ItemID:          id,
			Text:            item.Text,
			GlossEN:         item.GlossEN,
			GlossDE:         item.GlossDE,
			Stage:           srs.StageOf(r).String(),
			DueDate:         srs.FormatDate(r.DueDate),
			IntervalDays:    r.IntervalDays,
			RepetitionCount: r.RepetitionCount,
			EasinessFactor:  r.EasinessFactor,
		})
	}

	logger.Info("Successfully retrieved due items", "count", len(responses), "as_of", srs.FormatDate(asOf))
	return responses, nil
}

func (s *reviewService) GetNewItems(ctx context.Context, learnerID uuid.UUID) ([]*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID)

	items, err := s.vocabRepo.FindUnseen(ctx, s.db, learnerID, s.cfg.App.NewItemsPerSession)
	if err != nil {
		logger.Error("Failed to find unseen vocabulary", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load new items.", "", err)
	}
	logger.Info("Successfully retrieved new items", "count", len(items))
	return items, nil
}

// SubmitReview は 1 回分の復習結果を記録します。未学習の語彙なら初回レコードを作ってから適用します
func (s *reviewService) SubmitReview(ctx context.Context, learnerID uuid.UUID, itemID string, quality float64, reviewedOn time.Time) (*model.ReviewResultResponse, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "item_id", itemID)

	q, err := srs.ParseQuality(quality)
	if err != nil {
		logger.Warn("Rejected review with invalid quality", "quality", quality)
		return nil, err
	}
	if err := s.ensureItemExists(ctx, itemID); err != nil {
		return nil, err
	}

	outOfOrder := false
	updated, err := s.store.Update(ctx, learnerID, itemID, func(current srs.ReviewRecord, found bool) (srs.ReviewRecord, error) {
		if !found {
			current = srs.NewRecord(itemID, reviewedOn)
		}
		outOfOrder = srs.IsOutOfOrder(current, reviewedOn)
		return s.scheduler.RecordReview(current, q, reviewedOn)
	})
	if err != nil {
		return nil, s.storeError(ctx, "Failed to record review", err)
	}

	if outOfOrder {
		logger.Warn("Review date is before the last review, treated as same-day review",
			"reviewed_on", srs.FormatDate(reviewedOn),
			"last_reviewed", srs.FormatDate(*updated.LastReviewed),
		)
	}

	stage := srs.StageAfter(q, updated)
	logger.Info("Review recorded",
		"quality", q.String(),
		"stage", stage.String(),
		"interval_days", updated.IntervalDays,
		"due_date", srs.FormatDate(updated.DueDate),
	)
	return &model.ReviewResultResponse{
		Record:     model.NewReviewRecordResponse(updated),
		Stage:      stage.String(),
		OutOfOrder: outOfOrder,
	}, nil
}

func (s *reviewService) GetRecord(ctx context.Context, learnerID uuid.UUID, itemID string) (*model.ReviewRecordResponse, error) {
	r, err := s.store.Get(ctx, learnerID, itemID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("RECORD_NOT_FOUND", "This item has not been reviewed yet.", "item_id", model.ErrNotFound)
		}
		return nil, s.storeError(ctx, "Failed to load review record", err)
	}
	return model.NewReviewRecordResponse(r), nil
}

// ResetItem は語彙の学習履歴を破棄し、今日から復習対象の初期状態に戻します
func (s *reviewService) ResetItem(ctx context.Context, learnerID uuid.UUID, itemID string) (*model.ReviewRecordResponse, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "item_id", itemID)

	if err := s.ensureItemExists(ctx, itemID); err != nil {
		return nil, err
	}
	today := s.now()
	reset, err := s.store.Update(ctx, learnerID, itemID, func(srs.ReviewRecord, bool) (srs.ReviewRecord, error) {
		return srs.ResetItem(itemID, today), nil
	})
	if err != nil {
		return nil, s.storeError(ctx, "Failed to reset review record", err)
	}

	logger.Info("Review record reset")
	return model.NewReviewRecordResponse(reset), nil
}

func (s *reviewService) GetStats(ctx context.Context, learnerID uuid.UUID, asOf time.Time) (*model.StatsResponse, error) {
	records, err := s.loadRecords(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	list := srs.Records(records)
	return &model.StatsResponse{
		Summary:        srs.Summarize(list, asOf, s.cfg.App.TrendWindow),
		KnownItems:     srs.WordsKnown(list),
		DifficultItems: srs.WordsDifficult(list),
	}, nil
}

// ExportState はフロントエンドの macrobius_srs_data と同じ形式で状態を返します
func (s *reviewService) ExportState(ctx context.Context, learnerID uuid.UUID) ([]byte, error) {
	records, err := s.loadRecords(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	data, err := srs.EncodeState(records)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to encode review state", "error", err, "learner_id", learnerID)
		return nil, err
	}
	return data, nil
}

// ImportState は macrobius_srs_data 形式の状態で学習者の状態を置き換えます。
// 1 件でも不正なレコードや未登録の語彙があれば何も書き込みません
func (s *reviewService) ImportState(ctx context.Context, learnerID uuid.UUID, data []byte) (int, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID)

	records, err := srs.DecodeState(data)
	if err != nil {
		logger.Warn("Rejected invalid review state", "error", err)
		return 0, err
	}

	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	known, err := s.vocabRepo.FindByIDs(ctx, s.db, ids)
	if err != nil {
		logger.Error("Failed to check vocabulary for imported state", "error", err)
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to import review state.", "", err)
	}
	for _, r := range srs.Records(records) {
		if _, ok := known[r.ItemID]; !ok {
			logger.Warn("Imported state references unknown item", "item_id", r.ItemID)
			return 0, model.NewAppError("UNKNOWN_ITEM", "The state references an unknown vocabulary item: "+r.ItemID, r.ItemID, model.ErrInvalidRecord)
		}
	}

	if err := s.store.Save(ctx, learnerID, records); err != nil {
		return 0, s.storeError(ctx, "Failed to save imported review state", err)
	}
	logger.Info("Review state imported", "records", len(records))
	return len(records), nil
}

func (s *reviewService) loadRecords(ctx context.Context, learnerID uuid.UUID) (map[string]srs.ReviewRecord, error) {
	records, err := s.store.Load(ctx, learnerID)
	if err != nil {
		return nil, s.storeError(ctx, "Failed to load review state", err)
	}
	return records, nil
}

func (s *reviewService) ensureItemExists(ctx context.Context, itemID string) error {
	if _, err := s.vocabRepo.FindByID(ctx, s.db, itemID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			middleware.GetLogger(ctx).Warn("Vocabulary item not found", "item_id", itemID)
			return model.NewAppError("ITEM_NOT_FOUND", "Vocabulary item not found.", "item_id", model.ErrNotFound)
		}
		middleware.GetLogger(ctx).Error("Failed to find vocabulary item", "error", err, "item_id", itemID)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load the vocabulary item.", "", err)
	}
	return nil
}

// storeError は不正レコードのエラーをそのまま返し、それ以外を内部エラーに包みます
func (s *reviewService) storeError(ctx context.Context, msg string, err error) error {
	var recErr *srs.InvalidRecordError
	if errors.As(err, &recErr) {
		middleware.GetLogger(ctx).Error(msg, "error", err, "item_id", recErr.ItemID, "field", recErr.Field)
		return recErr
	}
	middleware.GetLogger(ctx).Error(msg, "error", err)
	return model.NewAppError("INTERNAL_SERVER_ERROR", msg+".", "", err)
}
