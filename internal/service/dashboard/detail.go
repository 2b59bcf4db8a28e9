package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/uma-arai/hotel-dashboard/internal/aggregate"
	"github.com/uma-arai/hotel-dashboard/internal/format"
	"github.com/uma-arai/hotel-dashboard/internal/model"
	"github.com/uma-arai/hotel-dashboard/internal/status"
	"github.com/uma-arai/hotel-dashboard/internal/viewstate"
)

// NewGuestDetailContainer は宿泊者詳細用のコンテナを作成します
func (s *Service) NewGuestDetailContainer() *viewstate.Container[int64, *GuestDetail] {
	return viewstate.New(s.fetchGuestDetail, isNotFound)
}

// NewReservationDetailContainer は予約詳細用のコンテナを作成します
func (s *Service) NewReservationDetailContainer() *viewstate.Container[int64, *ReservationDetail] {
	return viewstate.New(s.fetchReservationDetail, isNotFound)
}

// GuestDetail は宿泊者詳細画面の状態を作成します
func (s *Service) GuestDetail(ctx context.Context, guestID int64) GuestDetailView {
	state, _ := s.NewGuestDetailContainer().Load(ctx, guestID)
	return NewGuestDetailView(state)
}

// ReservationDetail は予約詳細画面の状態を作成します
func (s *Service) ReservationDetail(ctx context.Context, reservationID int64) ReservationDetailView {
	state, _ := s.NewReservationDetailContainer().Load(ctx, reservationID)
	return NewReservationDetailView(state)
}

type occupantsKey struct {
	reservationID  int64
	primaryGuestID int64
}

// Occupants は予約の同伴者一覧を作成します。代表者が先頭になります
func (s *Service) Occupants(ctx context.Context, reservationID, primaryGuestID int64) OccupantsView {
	c := viewstate.New(s.fetchOccupants, nil)
	state, _ := c.Load(ctx, occupantsKey{reservationID: reservationID, primaryGuestID: primaryGuestID})

	view := OccupantsView{Phase: state.Phase, Occupants: state.Value}
	if state.Phase == viewstate.PhaseFailed {
		view.Error = state.Message()
	}
	if view.Occupants == nil {
		view.Occupants = []OccupantEntry{}
	}
	return view
}

func (s *Service) fetchGuestDetail(ctx context.Context, guestID int64) (*GuestDetail, error) {
	var (
		guest *model.Guest
		rows  []model.ReservationRow
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		guest, err = s.guestRepo.GetByID(egCtx, guestID)
		return err
	})
	eg.Go(func() error {
		var err error
		rows, err = s.reservationRepo.ListByGuest(egCtx, guestID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	reservations := make([]ReservationOption, 0, len(rows))
	for _, row := range rows {
		reservations = append(reservations, newReservationOption(row, status.Guest, 0))
	}

	detail := &GuestDetail{
		ID:           guest.ID,
		Name:         guest.Name,
		TaxID:        string(guest.TaxID),
		Email:        string(guest.Email),
		Phone:        string(guest.Phone),
		Address:      newAddress(guest),
		RegisteredAt: format.LocalDate(guest.RegisteredAt),
		Reservations: reservations,
	}
	if guest.LastReservedAt != nil {
		detail.LastReservedAt = format.LocalDate(*guest.LastReservedAt)
	}
	return detail, nil
}

// fetchReservationDetail は予約を取得してから、その宿泊者・消費明細・客室明細を並行して取得します
// 予約が存在しない場合は後続の取得を行いません
func (s *Service) fetchReservationDetail(ctx context.Context, reservationID int64) (*ReservationDetail, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	// 同伴者の失敗は詳細画面を失敗させない
	occupantsCh := make(chan OccupantsView, 1)
	go func() {
		occupantsCh <- s.Occupants(ctx, reservation.ID, reservation.GuestID)
	}()

	var (
		guest *model.Guest
		lines []model.ConsumptionLine
		rooms []model.RoomLine
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		guest, err = s.guestRepo.GetByID(egCtx, reservation.GuestID)
		return err
	})
	eg.Go(func() error {
		var err error
		lines, err = s.consumptionRepo.ListByReservation(egCtx, reservation.ID)
		return err
	})
	eg.Go(func() error {
		var err error
		rooms, err = s.roomRepo.ListByReservation(egCtx, reservation.ID)
		return err
	})
	err = eg.Wait()
	occupants := <-occupantsCh
	if err != nil {
		return nil, err
	}

	summary := aggregate.SummarizeConsumption(lines)
	departments := make([]DepartmentRow, 0, len(summary.ByDepartment))
	for _, d := range summary.ByDepartment {
		departments = append(departments, DepartmentRow{
			Name:      d.Department,
			Total:     d.Total,
			TotalText: format.Currency(d.Total),
			Count:     d.Count,
		})
	}
	roomValue := aggregate.TotalRoomValue(rooms)

	return &ReservationDetail{
		ID:                 reservation.ID,
		Status:             status.Reservation.Badge(reservation.Status),
		GuestID:            guest.ID,
		GuestName:          guest.Name,
		GuestEmail:         string(guest.Email),
		GuestPhone:         string(guest.Phone),
		CheckIn:            format.Date(reservation.CheckIn),
		CheckOut:           format.Date(reservation.CheckOut),
		Rooms:              newRoomBlocks(rooms),
		TotalRoomValue:     roomValue,
		TotalRoomValueText: format.Currency(roomValue),
		Occupants:          occupants,
		Summary: SummaryCards{
			ItemCount:            summary.ItemCount,
			TotalConsumption:     summary.TotalConsumption,
			TotalConsumptionText: format.Currency(summary.TotalConsumption),
			DepartmentCount:      summary.DepartmentCount,
		},
		Departments:   departments,
		Consumption:   newConsumptionRows(lines),
		NoConsumption: summary.ItemCount == 0,
	}, nil
}

func (s *Service) fetchOccupants(ctx context.Context, key occupantsKey) ([]OccupantEntry, error) {
	rows, err := s.occupantRepo.ListByReservation(ctx, key.reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list occupants: %w", err)
	}
	if len(rows) == 0 {
		return []OccupantEntry{}, nil
	}

	ids := make([]int64, 0, len(rows))
	holders := make(map[int64]bool, len(rows))
	for _, row := range rows {
		ids = append(ids, row.GuestID)
		if row.IsHolder {
			holders[row.GuestID] = true
		}
	}

	guests, err := s.guestRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list occupant guests: %w", err)
	}

	ordered := aggregate.PrimaryFirst(guests, key.primaryGuestID)
	entries := make([]OccupantEntry, 0, len(ordered))
	for _, g := range ordered {
		entries = append(entries, OccupantEntry{
			GuestID:    g.ID,
			Name:       g.Name,
			Email:      string(g.Email),
			Primary:    g.ID == key.primaryGuestID,
			HolderFlag: holders[g.ID],
		})
	}
	return entries, nil
}
