// Package dashboard は宿泊者・予約ダッシュボードの各画面のビューモデルを組み立てます
package dashboard

import (
	"errors"

	"github.com/uma-arai/hotel-dashboard/internal/repository"
)

// Service はリポジトリから取得した行を画面用のビューモデルに変換します
type Service struct {
	guestRepo       repository.GuestRepository
	reservationRepo repository.ReservationRepository
	consumptionRepo repository.ConsumptionRepository
	roomRepo        repository.RoomRepository
	occupantRepo    repository.OccupantRepository
}

// NewService は新しいServiceを作成します
func NewService(
	guestRepo repository.GuestRepository,
	reservationRepo repository.ReservationRepository,
	consumptionRepo repository.ConsumptionRepository,
	roomRepo repository.RoomRepository,
	occupantRepo repository.OccupantRepository,
) *Service {
	return &Service{
		guestRepo:       guestRepo,
		reservationRepo: reservationRepo,
		consumptionRepo: consumptionRepo,
		roomRepo:        roomRepo,
		occupantRepo:    occupantRepo,
	}
}

// NewServiceFromStore はストアから各リポジトリを組み立ててServiceを作成します
func NewServiceFromStore(store repository.Store) *Service {
	return NewService(
		repository.NewGuestRepository(store),
		repository.NewReservationRepository(store),
		repository.NewConsumptionRepository(store),
		repository.NewRoomRepository(store),
		repository.NewOccupantRepository(store),
	)
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
