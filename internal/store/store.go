//go:generate mockery --name Store --output ./mocks --outpkg mocks --case=underscore

// Package store は学習者ごとの復習状態 (item_id -> ReviewRecord) を永続化します。
package store

import (
	"context"

	"macrobius_srs/internal/srs"

	"github.com/google/uuid"
)

// UpdateFunc は現在のレコードを受け取り、保存する新しいレコードを返します。
// found が false の場合 current はゼロ値です。エラーを返すと何も書き込まれません。
type UpdateFunc func(current srs.ReviewRecord, found bool) (srs.ReviewRecord, error)

// Store は学習者単位の状態ストアです。
// 同じ学習者の同じ語彙に対する Update は直列化され、更新が失われることはありません。
type Store interface {
	// Load は学習者の全レコードを返します。未登録の学習者は空のマップです。
	Load(ctx context.Context, learnerID uuid.UUID) (map[string]srs.ReviewRecord, error)
	// Save は学習者の全レコードを置き換えます。
	Save(ctx context.Context, learnerID uuid.UUID, records map[string]srs.ReviewRecord) error
	// Get は 1 件取得します。存在しなければ model.ErrNotFound です。
	Get(ctx context.Context, learnerID uuid.UUID, itemID string) (srs.ReviewRecord, error)
	// Update は 1 件をアトミックに読み込み・変更・書き込みします。
	Update(ctx context.Context, learnerID uuid.UUID, itemID string, fn UpdateFunc) (srs.ReviewRecord, error)
	// Delete は 1 件削除します。存在しなければ model.ErrNotFound です。
	Delete(ctx context.Context, learnerID uuid.UUID, itemID string) error
}
