package repository

import (
	"context"

	"github.com/uma-arai/hotel-dashboard/internal/model"
)

// ReservationRepository は予約の取得を担当するインターフェースです
type ReservationRepository interface {
	GetByID(ctx context.Context, reservationID int64) (*model.Reservation, error)
	ListWithGuest(ctx context.Context) ([]model.ReservationRow, error)
	ListByGuest(ctx context.Context, guestID int64) ([]model.ReservationRow, error)
}

// ReservationRepositoryImpl はReservationRepositoryの実装です
type ReservationRepositoryImpl struct {
	store Store
}

// NewReservationRepository は新しいReservationRepositoryを作成します
func NewReservationRepository(store Store) *ReservationRepositoryImpl {
	return &ReservationRepositoryImpl{store: store}
}

var (
	guestJoin = Join{Table: TableGuests, As: "guest", LocalColumn: "hospede_id", ForeignColumn: "hospede_id"}
	roomsJoin = Join{Table: TableRoomLines, As: "rooms", LocalColumn: "reserva_id", ForeignColumn: "reserva_id", Many: true}
)

// GetByID は予約を1件取得します。存在しない場合は ErrNotFound を返します
func (r *ReservationRepositoryImpl) GetByID(ctx context.Context, reservationID int64) (*model.Reservation, error) {
	ctx, done := beginSubsegment(ctx, "ReservationRepository.GetByID")

	var reservation model.Reservation
	err := r.store.Get(ctx, TableReservations, reservationID, &reservation)
	done(err)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListWithGuest は全予約を宿泊者と客室明細を結合してチェックイン日の降順で取得します
func (r *ReservationRepositoryImpl) ListWithGuest(ctx context.Context) ([]model.ReservationRow, error) {
	ctx, done := beginSubsegment(ctx, "ReservationRepository.ListWithGuest")

	var rows []model.ReservationRow
	err := r.store.ListJoined(ctx, TableReservations, []Join{guestJoin, roomsJoin},
		ListOptions{OrderBy: []Order{Desc("data_checkin")}}, &rows)
	done(err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByGuest は宿泊者の予約を客室明細付きでチェックイン日の降順で取得します
func (r *ReservationRepositoryImpl) ListByGuest(ctx context.Context, guestID int64) ([]model.ReservationRow, error) {
	ctx, done := beginSubsegment(ctx, "ReservationRepository.ListByGuest")

	var rows []model.ReservationRow
	err := r.store.ListJoined(ctx, TableReservations, []Join{roomsJoin}, ListOptions{
		Where:   []Predicate{Eq("hospede_id", guestID)},
		OrderBy: []Order{Desc("data_checkin")},
	}, &rows)
	done(err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
