package repository

import (
	"context"

	"github.com/uma-arai/hotel-dashboard/internal/model"
)

// GuestRepository は宿泊者の取得を担当するインターフェースです
type GuestRepository interface {
	ListOrderedByName(ctx context.Context) ([]model.Guest, error)
	GetByID(ctx context.Context, guestID int64) (*model.Guest, error)
	ListByIDs(ctx context.Context, guestIDs []int64) ([]model.Guest, error)
}

// GuestRepositoryImpl はGuestRepositoryの実装です
type GuestRepositoryImpl struct {
	store Store
}

// NewGuestRepository は新しいGuestRepositoryを作成します
func NewGuestRepository(store Store) *GuestRepositoryImpl {
	return &GuestRepositoryImpl{store: store}
}

// ListOrderedByName は全宿泊者を氏名の昇順で取得します
func (r *GuestRepositoryImpl) ListOrderedByName(ctx context.Context) ([]model.Guest, error) {
	ctx, done := beginSubsegment(ctx, "GuestRepository.ListOrderedByName")

	var guests []model.Guest
	err := r.store.List(ctx, TableGuests, ListOptions{OrderBy: []Order{Asc("nome")}}, &guests)
	done(err)
	if err != nil {
		return nil, err
	}
	return guests, nil
}

// GetByID は宿泊者を1件取得します。存在しない場合は ErrNotFound を返します
func (r *GuestRepositoryImpl) GetByID(ctx context.Context, guestID int64) (*model.Guest, error) {
	ctx, done := beginSubsegment(ctx, "GuestRepository.GetByID")

	var guest model.Guest
	err := r.store.Get(ctx, TableGuests, guestID, &guest)
	done(err)
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// ListByIDs は指定されたIDの宿泊者を1回のクエリでまとめて取得します
// 並び順はストアが返した順のままです
func (r *GuestRepositoryImpl) ListByIDs(ctx context.Context, guestIDs []int64) ([]model.Guest, error) {
	ctx, done := beginSubsegment(ctx, "GuestRepository.ListByIDs")

	var guests []model.Guest
	err := r.store.List(ctx, TableGuests, ListOptions{Where: []Predicate{In("hospede_id", guestIDs)}}, &guests)
	done(err)
	if err != nil {
		return nil, err
	}
	return guests, nil
}
