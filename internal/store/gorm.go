package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"macrobius_srs/internal/middleware"
	"macrobius_srs/internal/model"
	"macrobius_srs/internal/repository"
	"macrobius_srs/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore は review_records テーブルに状態を保存します。
type GormStore struct {
	db         *gorm.DB
	recordRepo repository.RecordRepository
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB, recordRepo repository.RecordRepository) *GormStore {
	return &GormStore{db: db, recordRepo: recordRepo}
}

func (s *GormStore) Load(ctx context.Context, learnerID uuid.UUID) (map[string]srs.ReviewRecord, error) {
	rows, err := s.recordRepo.FindAllByLearner(ctx, s.db, learnerID)
	if err != nil {
		return nil, fmt.Errorf("GormStore.Load: %w", err)
	}
	records := make(map[string]srs.ReviewRecord, len(rows))
	for _, row := range rows {
		r, err := fromRow(row)
		if err != nil {
			middleware.GetLogger(ctx).Error("Stored review record is invalid",
				"error", err,
				"learner_id", learnerID.String(),
				"item_id", row.ItemID,
			)
			return nil, err
		}
		records[r.ItemID] = r
	}
	return records, nil
}

func (s *GormStore) Save(ctx context.Context, learnerID uuid.UUID, records map[string]srs.ReviewRecord) error {
	rows := make([]*model.ReviewRecordRow, 0, len(records))
	for _, r := range srs.Records(records) {
		row, err := toRow(learnerID, r)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.recordRepo.DeleteAllByLearner(ctx, tx, learnerID); err != nil {
			return err
		}
		for _, row := range rows {
			if err := s.recordRepo.Upsert(ctx, tx, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("GormStore.Save: %w", err)
	}
	middleware.GetLogger(ctx).Info("Review state replaced", "learner_id", learnerID.String(), "records", len(rows))
	return nil
}

func (s *GormStore) Get(ctx context.Context, learnerID uuid.UUID, itemID string) (srs.ReviewRecord, error) {
	row, err := s.recordRepo.FindByItem(ctx, s.db, learnerID, itemID, false)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return srs.ReviewRecord{}, model.ErrNotFound
		}
		return srs.ReviewRecord{}, fmt.Errorf("GormStore.Get: %w", err)
	}
	return fromRow(row)
}

// Update はトランザクション内で行を (PostgreSQL では FOR UPDATE で) 読み、fn の結果を書き戻します。
// 行が無いときは初期行を挿入して行ロックを取ってから fn を呼びます。
func (s *GormStore) Update(ctx context.Context, learnerID uuid.UUID, itemID string, fn UpdateFunc) (srs.ReviewRecord, error) {
	var updated srs.ReviewRecord

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, found, err := s.lockRecord(ctx, tx, learnerID, itemID)
		if err != nil {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}
		next.ItemID = itemID

		newRow, err := toRow(learnerID, next)
		if err != nil {
			return err
		}
		if err := s.recordRepo.Upsert(ctx, tx, newRow); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		// fn のエラーは呼び出し側が errors.As で判別できるようにラップして返す
		return srs.ReviewRecord{}, fmt.Errorf("GormStore.Update: %w", err)
	}
	return updated, nil
}

// lockRecord は行ロックを取ったうえで現在のレコードを返します。
// 自分が初期行を挿入した場合は found=false を返し、fn に新規作成させます。
// 並行するトランザクションが先に挿入していれば、そのコミットを待ってから読み直します。
func (s *GormStore) lockRecord(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, itemID string) (srs.ReviewRecord, bool, error) {
	row, err := s.recordRepo.FindByItem(ctx, tx, learnerID, itemID, true)
	if errors.Is(err, model.ErrNotFound) {
		var placeholder *model.ReviewRecordRow
		if placeholder, err = toRow(learnerID, srs.NewRecord(itemID, time.Now())); err != nil {
			return srs.ReviewRecord{}, false, err
		}
		var created bool
		if created, err = s.recordRepo.InsertIfAbsent(ctx, tx, placeholder); err != nil {
			return srs.ReviewRecord{}, false, err
		}
		if created {
			return srs.ReviewRecord{}, false, nil
		}
		row, err = s.recordRepo.FindByItem(ctx, tx, learnerID, itemID, true)
	}
	if err != nil {
		return srs.ReviewRecord{}, false, err
	}
	current, err := fromRow(row)
	if err != nil {
		return srs.ReviewRecord{}, false, err
	}
	return current, true, nil
}

func (s *GormStore) Delete(ctx context.Context, learnerID uuid.UUID, itemID string) error {
	err := s.recordRepo.DeleteByItem(ctx, s.db, learnerID, itemID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("GormStore.Delete: %w", err)
	}
	return nil
}

func toRow(learnerID uuid.UUID, r srs.ReviewRecord) (*model.ReviewRecordRow, error) {
	if err := srs.Validate(r); err != nil {
		return nil, err
	}
	history, err := srs.MarshalHistory(r.History)
	if err != nil {
		return nil, fmt.Errorf("marshal review history: %w", err)
	}
	row := &model.ReviewRecordRow{
		LearnerID:       learnerID,
		ItemID:          r.ItemID,
		EasinessFactor:  r.EasinessFactor,
		RepetitionCount: r.RepetitionCount,
		IntervalDays:    r.IntervalDays,
		DueDate:         srs.DateOf(r.DueDate),
		ReviewHistory:   history,
	}
	if r.LastReviewed != nil {
		last := srs.DateOf(*r.LastReviewed)
		row.LastReviewed = &last
	}
	return row, nil
}

func fromRow(row *model.ReviewRecordRow) (srs.ReviewRecord, error) {
	history, err := srs.UnmarshalHistory(row.ItemID, row.ReviewHistory)
	if err != nil {
		return srs.ReviewRecord{}, err
	}
	r := srs.ReviewRecord{
		ItemID:          row.ItemID,
		EasinessFactor:  row.EasinessFactor,
		RepetitionCount: row.RepetitionCount,
		IntervalDays:    row.IntervalDays,
		DueDate:         srs.DateOf(row.DueDate),
		History:         history,
	}
	if row.LastReviewed != nil {
		last := srs.DateOf(*row.LastReviewed)
		r.LastReviewed = &last
	}
	if err := srs.Validate(r); err != nil {
		return srs.ReviewRecord{}, err
	}
	return r, nil
}
