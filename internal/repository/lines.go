package repository

import (
	"context"

	"github.com/uma-arai/hotel-dashboard/internal/model"
)

// ConsumptionRepository は消費明細の取得を担当するインターフェースです
type ConsumptionRepository interface {
	ListByReservation(ctx context.Context, reservationID int64) ([]model.ConsumptionLine, error)
}

// RoomRepository は客室明細の取得を担当するインターフェースです
type RoomRepository interface {
	ListByReservation(ctx context.Context, reservationID int64) ([]model.RoomLine, error)
}

// OccupantRepository は同伴者の取得を担当するインターフェースです
type OccupantRepository interface {
	ListByReservation(ctx context.Context, reservationID int64) ([]model.Occupant, error)
}

// ConsumptionRepositoryImpl はConsumptionRepositoryの実装です
type ConsumptionRepositoryImpl struct {
	store Store
}

// NewConsumptionRepository は新しいConsumptionRepositoryを作成します
func NewConsumptionRepository(store Store) *ConsumptionRepositoryImpl {
	return &ConsumptionRepositoryImpl{store: store}
}

// ListByReservation は予約の消費明細を消費日時の降順で取得します
func (r *ConsumptionRepositoryImpl) ListByReservation(ctx context.Context, reservationID int64) ([]model.ConsumptionLine, error) {
	ctx, done := beginSubsegment(ctx, "ConsumptionRepository.ListByReservation")

	var lines []model.ConsumptionLine
	err := r.store.ListRelated(ctx, TableConsumptionLines, "reserva_id", reservationID,
		ListOptions{OrderBy: []Order{Desc("data_consumo")}}, &lines)
	done(err)
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// RoomRepositoryImpl はRoomRepositoryの実装です
type RoomRepositoryImpl struct {
	store Store
}

// NewRoomRepository は新しいRoomRepositoryを作成します
func NewRoomRepository(store Store) *RoomRepositoryImpl {
	return &RoomRepositoryImpl{store: store}
}

// ListByReservation は予約の客室明細を取得します
func (r *RoomRepositoryImpl) ListByReservation(ctx context.Context, reservationID int64) ([]model.RoomLine, error) {
	ctx, done := beginSubsegment(ctx, "RoomRepository.ListByReservation")

	var rooms []model.RoomLine
	err := r.store.ListRelated(ctx, TableRoomLines, "reserva_id", reservationID, ListOptions{}, &rooms)
	done(err)
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// OccupantRepositoryImpl はOccupantRepositoryの実装です
type OccupantRepositoryImpl struct {
	store Store
}

// NewOccupantRepository は新しいOccupantRepositoryを作成します
func NewOccupantRepository(store Store) *OccupantRepositoryImpl {
	return &OccupantRepositoryImpl{store: store}
}

// ListByReservation は予約の同伴者を取得します
func (r *OccupantRepositoryImpl) ListByReservation(ctx context.Context, reservationID int64) ([]model.Occupant, error) {
	ctx, done := beginSubsegment(ctx, "OccupantRepository.ListByReservation")

	var occupants []model.Occupant
	err := r.store.ListRelated(ctx, TableOccupants, "reserva_id", reservationID, ListOptions{}, &occupants)
	done(err)
	if err != nil {
		return nil, err
	}
	return occupants, nil
}
