package dashboard

import (
	"context"
	"log"

	"github.com/uma-arai/hotel-dashboard/internal/aggregate"
	"github.com/uma-arai/hotel-dashboard/internal/status"
	"github.com/uma-arai/hotel-dashboard/internal/viewstate"
)

// GuestSelector は検索語で絞り込んだ宿泊者セレクタを作成します
// 取得に失敗した場合はログに出力し、空の一覧として扱います
func (s *Service) GuestSelector(ctx context.Context, term string, selectedID int64) GuestSelectorView {
	guests, err := s.guestRepo.ListOrderedByName(ctx)
	if err != nil {
		log.Printf("Failed to list guests: %v", err)
		guests = nil
	}

	filtered := aggregate.FilterGuests(guests, term)
	options := make([]GuestOption, 0, len(filtered))
	for _, g := range filtered {
		options = append(options, GuestOption{
			ID:       g.ID,
			Name:     g.Name,
			TaxID:    string(g.TaxID),
			Email:    string(g.Email),
			Selected: g.ID == selectedID,
		})
	}

	return GuestSelectorView{
		Phase:     viewstate.PhaseReady,
		Term:      term,
		Guests:    options,
		NoneFound: len(options) == 0,
	}
}

// ReservationSelector は全予約を宿泊者名または予約番号で絞り込んだセレクタを作成します
func (s *Service) ReservationSelector(ctx context.Context, term string, selectedID int64) ReservationSelectorView {
	rows, err := s.reservationRepo.ListWithGuest(ctx)
	if err != nil {
		log.Printf("Failed to list reservations: %v", err)
		rows = nil
	}

	filtered := aggregate.FilterReservations(rows, term)
	options := make([]ReservationOption, 0, len(filtered))
	for _, row := range filtered {
		options = append(options, newReservationOption(row, status.Reservation, selectedID))
	}

	return ReservationSelectorView{
		Phase:        viewstate.PhaseReady,
		Term:         term,
		Reservations: options,
		NoneFound:    len(options) == 0,
	}
}

// GuestReservations は宿泊者の予約一覧を作成します。検索語による絞り込みはありません
func (s *Service) GuestReservations(ctx context.Context, guestID, selectedID int64) ReservationSelectorView {
	rows, err := s.reservationRepo.ListByGuest(ctx, guestID)
	if err != nil {
		log.Printf("Failed to list reservations for guest %d: %v", guestID, err)
		rows = nil
	}

	options := make([]ReservationOption, 0, len(rows))
	for _, row := range rows {
		options = append(options, newReservationOption(row, status.Guest, selectedID))
	}

	return ReservationSelectorView{
		Phase:        viewstate.PhaseReady,
		Reservations: options,
		NoneFound:    len(options) == 0,
	}
}
