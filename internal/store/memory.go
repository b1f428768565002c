package store

import (
	"context"
	"sync"

	"macrobius_srs/internal/model"
	"macrobius_srs/internal/srs"

	"github.com/google/uuid"
)

// MemoryStore はプロセス内のマップに状態を持ちます。テストと開発用。
type MemoryStore struct {
	mu       sync.Mutex
	learners map[uuid.UUID]map[string]srs.ReviewRecord
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{learners: make(map[uuid.UUID]map[string]srs.ReviewRecord)}
}

func (s *MemoryStore) Load(ctx context.Context, learnerID uuid.UUID) (map[string]srs.ReviewRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.learners[learnerID]
	out := make(map[string]srs.ReviewRecord, len(records))
	for id, r := range records {
		out[id] = r.Clone()
	}
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, learnerID uuid.UUID, records map[string]srs.ReviewRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	copied := make(map[string]srs.ReviewRecord, len(records))
	for id, r := range records {
		r.ItemID = id
		if err := srs.Validate(r); err != nil {
			return err
		}
		copied[id] = r.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.learners[learnerID] = copied
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, learnerID uuid.UUID, itemID string) (srs.ReviewRecord, error) {
	if err := ctx.Err(); err != nil {
		return srs.ReviewRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.learners[learnerID][itemID]
	if !ok {
		return srs.ReviewRecord{}, model.ErrNotFound
	}
	return r.Clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, learnerID uuid.UUID, itemID string, fn UpdateFunc) (srs.ReviewRecord, error) {
	if err := ctx.Err(); err != nil {
		return srs.ReviewRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, found := s.learners[learnerID][itemID]
	if found {
		current = current.Clone()
	}
	next, err := fn(current, found)
	if err != nil {
		return srs.ReviewRecord{}, err
	}
	next.ItemID = itemID
	if err := srs.Validate(next); err != nil {
		return srs.ReviewRecord{}, err
	}

	records, ok := s.learners[learnerID]
	if !ok {
		records = make(map[string]srs.ReviewRecord)
		s.learners[learnerID] = records
	}
	records[itemID] = next.Clone()
	return next, nil
}

func (s *MemoryStore) Delete(ctx context.Context, learnerID uuid.UUID, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.learners[learnerID][itemID]; !ok {
		return model.ErrNotFound
	}
	delete(s.learners[learnerID], itemID)
	return nil
}
