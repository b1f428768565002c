package store_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"macrobius_srs/internal/model"
	"macrobius_srs/internal/repository"
	"macrobius_srs/internal/srs"
	"macrobius_srs/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newGormStore(t *testing.T) store.Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := repository.NewDB("sqlite://file:"+uuid.NewString()+"?mode=memory&cache=shared", logger)
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return store.NewGormStore(db, repository.NewGormRecordRepository())
}

// 両方の実装に同じ振る舞いを要求する
func forEachStore(t *testing.T, fn func(t *testing.T, s store.Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, store.NewMemoryStore()) })
	t.Run("gorm", func(t *testing.T) { fn(t, newGormStore(t)) })
}

func reviewed(t *testing.T, itemID string, on time.Time, qs ...srs.Quality) srs.ReviewRecord {
	t.Helper()
	r := srs.NewRecord(itemID, on)
	for _, q := range qs {
		var err error
		r, err = srs.RecordReview(r, q, on)
		require.NoError(t, err)
	}
	return r
}

func TestStore_SaveAndLoad(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		learner := uuid.New()

		records := map[string]srs.ReviewRecord{
			"amor":    reviewed(t, "amor", day("2024-01-01"), srs.QualityGood, srs.QualityPerfect),
			"virtus":  reviewed(t, "virtus", day("2024-01-02"), srs.QualityWrong),
			"saturni": srs.NewRecord("saturni", day("2024-01-03")),
		}
		require.NoError(t, s.Save(ctx, learner, records))

		loaded, err := s.Load(ctx, learner)
		require.NoError(t, err)
		assert.Equal(t, records, loaded)

		// 置き換えなので古いレコードは消える
		require.NoError(t, s.Save(ctx, learner, map[string]srs.ReviewRecord{"amor": records["amor"]}))
		loaded, err = s.Load(ctx, learner)
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
		assert.Contains(t, loaded, "amor")
	})
}

func TestStore_LoadUnknownLearner(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		loaded, err := s.Load(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})
}

func TestStore_SaveRejectsInvalidRecord(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		learner := uuid.New()
		require.NoError(t, s.Save(ctx, learner, map[string]srs.ReviewRecord{
			"amor": srs.NewRecord("amor", day("2024-01-01")),
		}))

		bad := srs.NewRecord("virtus", day("2024-01-01"))
		bad.EasinessFactor = 1.0
		err := s.Save(ctx, learner, map[string]srs.ReviewRecord{"virtus": bad})

		var recErr *srs.InvalidRecordError
		require.ErrorAs(t, err, &recErr)
		assert.Equal(t, "virtus", recErr.ItemID)

		// 失敗した Save は既存の状態を壊さない
		loaded, err := s.Load(ctx, learner)
		require.NoError(t, err)
		assert.Contains(t, loaded, "amor")
	})
}

func TestStore_Update(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		learner := uuid.New()

		created, err := s.Update(ctx, learner, "amor", func(cur srs.ReviewRecord, found bool) (srs.ReviewRecord, error) {
			assert.False(t, found)
			return srs.RecordReview(srs.NewRecord("amor", day("2024-01-01")), srs.QualityGood, day("2024-01-01"))
		})
		require.NoError(t, err)
		assert.Equal(t, 1, created.RepetitionCount)

		updated, err := s.Update(ctx, learner, "amor", func(cur srs.ReviewRecord, found bool) (srs.ReviewRecord, error) {
			assert.True(t, found)
			assert.Equal(t, created, cur)
			return srs.RecordReview(cur, srs.QualityGood, day("2024-01-02"))
		})
		require.NoError(t, err)
		assert.Equal(t, 2, updated.RepetitionCount)
		assert.Equal(t, 6, updated.IntervalDays)

		got, err := s.Get(ctx, learner, "amor")
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})
}

func TestStore_UpdateErrorWritesNothing(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		learner := uuid.New()
		boom := errors.New("boom")

		_, err := s.Update(ctx, learner, "amor", func(srs.ReviewRecord, bool) (srs.ReviewRecord, error) {
			return srs.ReviewRecord{}, boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = s.Get(ctx, learner, "amor")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		learner := uuid.New()
		const workers = 20

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.Update(ctx, learner, "amor", func(cur srs.ReviewRecord, found bool) (srs.ReviewRecord, error) {
					if !found {
						cur = srs.NewRecord("amor", day("2024-01-01"))
					}
					return srs.RecordReview(cur, srs.QualityPerfect, day("2024-01-01"))
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := s.Get(ctx, learner, "amor")
		require.NoError(t, err)
		assert.Equal(t, workers, got.RepetitionCount)
		assert.Len(t, got.History, workers)
	})
}

func TestStore_Delete(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		learner := uuid.New()
		require.NoError(t, s.Save(ctx, learner, map[string]srs.ReviewRecord{
			"amor":   srs.NewRecord("amor", day("2024-01-01")),
			"virtus": srs.NewRecord("virtus", day("2024-01-01")),
		}))

		require.NoError(t, s.Delete(ctx, learner, "amor"))
		assert.ErrorIs(t, s.Delete(ctx, learner, "amor"), model.ErrNotFound)

		loaded, err := s.Load(ctx, learner)
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
		assert.Contains(t, loaded, "virtus")
	})
}

func TestStore_IsolatesLearners(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		a, b := uuid.New(), uuid.New()
		require.NoError(t, s.Save(ctx, a, map[string]srs.ReviewRecord{"amor": srs.NewRecord("amor", day("2024-01-01"))}))

		loaded, err := s.Load(ctx, b)
		require.NoError(t, err)
		assert.Empty(t, loaded)
		_, err = s.Get(ctx, b, "amor")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
