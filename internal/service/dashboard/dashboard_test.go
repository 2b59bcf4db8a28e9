package dashboard

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/uma-arai/hotel-dashboard/internal/format"
	"github.com/uma-arai/hotel-dashboard/internal/model"
	"github.com/uma-arai/hotel-dashboard/internal/status"
	"github.com/uma-arai/hotel-dashboard/internal/viewstate"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFixture() *mocks {
	maria := model.Guest{ID: 42, Name: "Maria Silva", TaxID: "123.456.789-00", Email: "maria@example.com", Phone: "+55 11 99999-0000", City: "São Paulo", RegisteredAt: day(2023, time.June, 1)}
	ana := model.Guest{ID: 7, Name: "Ana Lima", Email: "ana@example.com", RegisteredAt: day(2023, time.July, 2)}
	carlos := model.Guest{ID: 3, Name: "Carlos Souza", TaxID: "987.654.321-00", RegisteredAt: day(2023, time.August, 3)}

	r100 := model.Reservation{ID: 100, GuestID: 42, CheckIn: day(2024, time.January, 5), CheckOut: day(2024, time.January, 8), Status: 1}
	r101 := model.Reservation{ID: 101, GuestID: 42, CheckIn: day(2024, time.March, 1), CheckOut: day(2024, time.March, 3), Status: 2}
	r200 := model.Reservation{ID: 200, GuestID: 77, CheckIn: day(2024, time.May, 10), CheckOut: day(2024, time.May, 12), Status: 3}

	rooms100 := []model.RoomLine{
		{ID: 1, ReservationID: 100, RoomType: "Standard", RatePlan: "Tarifa Balcão", NightlyRate: 300},
		{ID: 2, ReservationID: 100, RoomType: "Luxo", RatePlan: "Pacote", NightlyRate: 450.5},
	}
	rooms101 := []model.RoomLine{{ID: 3, ReservationID: 101, RoomType: "Suíte", RatePlan: "Café incluso", NightlyRate: 800}}

	mariaSummary := &model.GuestSummary{ID: 42, Name: "Maria Silva"}
	row100 := model.ReservationRow{Reservation: r100, Guest: model.JoinedGuest{GuestSummary: mariaSummary}, Rooms: rooms100}
	row101 := model.ReservationRow{Reservation: r101, Guest: model.JoinedGuest{GuestSummary: mariaSummary}, Rooms: rooms101}
	row200 := model.ReservationRow{Reservation: r200}

	return &mocks{
		guests: &MockGuestRepository{all: []model.Guest{ana, carlos, maria}},
		reservations: &MockReservationRepository{
			reservations: map[int64]model.Reservation{100: r100, 101: r101, 200: r200},
			rows:         []model.ReservationRow{row200, row101, row100},
			byGuest:      map[int64][]model.ReservationRow{42: {row101, row100}},
		},
		consumption: &MockConsumptionRepository{lines: map[int64][]model.ConsumptionLine{
			100: {
				{ID: 1, ReservationID: 100, Department: "Bar", Description: "Caipirinha", Quantity: 1, UnitPrice: 20, Total: 20, ConsumedAt: time.Date(2024, time.January, 6, 21, 0, 0, 0, time.UTC)},
				{ID: 2, ReservationID: 100, Department: "Spa", Description: "Massagem", Quantity: 1, UnitPrice: 50, Total: 50},
				{ID: 3, ReservationID: 100, Department: "Bar", Description: "Água", Quantity: 3, UnitPrice: 5, Total: 15},
			},
		}},
		rooms: &MockRoomRepository{rooms: map[int64][]model.RoomLine{100: rooms100, 101: rooms101}},
		occupants: &MockOccupantRepository{occupants: map[int64][]model.Occupant{
			100: {
				{ID: 1, ReservationID: 100, GuestID: 7},
				{ID: 2, ReservationID: 100, GuestID: 3},
				{ID: 3, ReservationID: 100, GuestID: 42, IsHolder: true},
			},
		}},
	}
}

func reservationIDs(options []ReservationOption) []int64 {
	ids := make([]int64, 0, len(options))
	for _, o := range options {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestService_GuestSelector(t *testing.T) {
	tests := []struct {
		name          string
		term          string
		listErr       error
		wantIDs       []int64
		wantNoneFound bool
	}{
		{name: "検索語なしは全件を氏名順", wantIDs: []int64{7, 3, 42}},
		{name: "氏名で大文字小文字を区別せず絞り込む", term: "SILVA", wantIDs: []int64{42}},
		{name: "CPFで絞り込む", term: "987.654", wantIDs: []int64{3}},
		{name: "メールで絞り込む", term: "ana@", wantIDs: []int64{7}},
		{name: "該当なし", term: "zzz", wantIDs: []int64{}, wantNoneFound: true},
		{name: "取得失敗は空の一覧", listErr: errors.New("connection refused"), wantIDs: []int64{}, wantNoneFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newFixture()
			m.guests.listErr = tt.listErr

			view := m.service().GuestSelector(context.Background(), tt.term, 42)
			if view.Phase != viewstate.PhaseReady {
				t.Errorf("Phase = %s, want ready", view.Phase)
			}
			ids := make([]int64, 0, len(view.Guests))
			for _, g := range view.Guests {
				ids = append(ids, g.ID)
				if g.Selected != (g.ID == 42) {
					t.Errorf("guest %d Selected = %v", g.ID, g.Selected)
				}
			}
			if !slices.Equal(ids, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
			if view.NoneFound != tt.wantNoneFound {
				t.Errorf("NoneFound = %v, want %v", view.NoneFound, tt.wantNoneFound)
			}
		})
	}
}

func TestService_ReservationSelector(t *testing.T) {
	m := newFixture()
	s := m.service()

	view := s.ReservationSelector(context.Background(), "", 101)
	if got := reservationIDs(view.Reservations); !slices.Equal(got, []int64{200, 101, 100}) {
		t.Fatalf("ids = %v, want [200 101 100]", got)
	}

	noGuest := view.Reservations[0]
	if noGuest.GuestName != NoGuestLabel {
		t.Errorf("GuestName = %q, want %q", noGuest.GuestName, NoGuestLabel)
	}
	if noGuest.RoomTypes != "-" {
		t.Errorf("RoomTypes without rooms = %q, want -", noGuest.RoomTypes)
	}
	if noGuest.Status != status.Reservation.Badge(3) {
		t.Errorf("Status = %+v, want Realizada", noGuest.Status)
	}

	if !view.Reservations[1].Selected || view.Reservations[2].Selected {
		t.Errorf("Selected flags = %v, %v", view.Reservations[1].Selected, view.Reservations[2].Selected)
	}

	multi := view.Reservations[2]
	if multi.RoomTypes != "Standard, Luxo" || multi.RatePlans != "Tarifa Balcão, Pacote" {
		t.Errorf("room labels = %q / %q", multi.RoomTypes, multi.RatePlans)
	}
	if multi.CheckIn != "05/01/2024" || multi.CheckOut != "08/01/2024" {
		t.Errorf("dates = %s - %s", multi.CheckIn, multi.CheckOut)
	}
	if multi.Status.Label != "Confirmada" || multi.Status.Category != status.CategoryGreen {
		t.Errorf("Status = %+v, want Confirmada/green", multi.Status)
	}

	t.Run("予約番号で絞り込む", func(t *testing.T) {
		view := s.ReservationSelector(context.Background(), "10", 0)
		if got := reservationIDs(view.Reservations); !slices.Equal(got, []int64{101, 100}) {
			t.Errorf("ids = %v, want [101 100]", got)
		}
	})

	t.Run("宿泊者名で絞り込む", func(t *testing.T) {
		view := s.ReservationSelector(context.Background(), "maria", 0)
		if got := reservationIDs(view.Reservations); !slices.Equal(got, []int64{101, 100}) {
			t.Errorf("ids = %v, want [101 100]", got)
		}
	})
}

func TestService_GuestReservations(t *testing.T) {
	m := newFixture()
	view := m.service().GuestReservations(context.Background(), 42, 0)

	if got := reservationIDs(view.Reservations); !slices.Equal(got, []int64{101, 100}) {
		t.Fatalf("ids = %v, want [101 100]", got)
	}
	// 宿泊者側の画面は宿泊者用のステータス表を使う
	if got := view.Reservations[0].Status; got.Label != "Check-in" || got.Category != status.CategoryGreen {
		t.Errorf("Status(2) = %+v, want Check-in/green", got)
	}
	if got := view.Reservations[1].Status; got.Label != "Confirmada" || got.Category != status.CategoryYellow {
		t.Errorf("Status(1) = %+v, want Confirmada/yellow", got)
	}
	if got := view.Reservations[0].NightlyRates; got != "R$ 800,00" {
		t.Errorf("NightlyRates = %q, want R$ 800,00", got)
	}

	t.Run("予約なし", func(t *testing.T) {
		view := m.service().GuestReservations(context.Background(), 7, 0)
		if len(view.Reservations) != 0 || !view.NoneFound {
			t.Errorf("view = %+v, want empty", view)
		}
	})
}

func useLocation(t *testing.T, loc *time.Location) {
	t.Helper()
	previous := format.Location()
	format.SetLocation(loc)
	t.Cleanup(func() { format.SetLocation(previous) })
}

func TestService_GuestDetail(t *testing.T) {
	useLocation(t, time.UTC)

	tests := []struct {
		name      string
		guestID   int64
		getErr    error
		wantPhase viewstate.Phase
	}{
		{name: "宿泊者と予約を取得", guestID: 42, wantPhase: viewstate.PhaseReady},
		{name: "存在しない宿泊者はnot_found", guestID: 999, wantPhase: viewstate.PhaseNotFound},
		{name: "取得失敗はfailed", guestID: 42, getErr: errors.New("timeout"), wantPhase: viewstate.PhaseFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newFixture()
			m.guests.getErr = tt.getErr

			view := m.service().GuestDetail(context.Background(), tt.guestID)
			if view.Phase != tt.wantPhase {
				t.Fatalf("Phase = %s, want %s", view.Phase, tt.wantPhase)
			}
			switch tt.wantPhase {
			case viewstate.PhaseReady:
				g := view.Guest
				if g.Name != "Maria Silva" || g.TaxID != "123.456.789-00" || g.Address.City != "São Paulo" {
					t.Errorf("guest = %+v", g)
				}
				if g.RegisteredAt != "01/06/2023" {
					t.Errorf("RegisteredAt = %q", g.RegisteredAt)
				}
				if got := reservationIDs(g.Reservations); !slices.Equal(got, []int64{101, 100}) {
					t.Errorf("reservations = %v, want [101 100]", got)
				}
			case viewstate.PhaseFailed:
				if view.Error != "timeout" {
					t.Errorf("Error = %q, want timeout", view.Error)
				}
			default:
				if view.Guest != nil || view.Error != "" {
					t.Errorf("not_found view = %+v", view)
				}
			}
		})
	}
}

func TestService_GuestDetail_LocalDates(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}
	useLocation(t, saoPaulo)

	m := newFixture()
	lastReserved := time.Date(2024, time.March, 1, 1, 30, 0, 0, time.UTC)
	for i := range m.guests.all {
		if m.guests.all[i].ID == 42 {
			m.guests.all[i].RegisteredAt = time.Date(2023, time.June, 1, 2, 0, 0, 0, time.UTC)
			m.guests.all[i].LastReservedAt = &lastReserved
		}
	}

	view := m.service().GuestDetail(context.Background(), 42)
	if view.Phase != viewstate.PhaseReady {
		t.Fatalf("Phase = %s, want %s", view.Phase, viewstate.PhaseReady)
	}
	if view.Guest.RegisteredAt != "31/05/2023" {
		t.Errorf("RegisteredAt = %q, want 31/05/2023", view.Guest.RegisteredAt)
	}
	if view.Guest.LastReservedAt != "29/02/2024" {
		t.Errorf("LastReservedAt = %q, want 29/02/2024", view.Guest.LastReservedAt)
	}
}

func TestService_ReservationDetail(t *testing.T) {
	t.Run("消費明細を部門別に集計", func(t *testing.T) {
		m := newFixture()
		view := m.service().ReservationDetail(context.Background(), 100)
		if view.Phase != viewstate.PhaseReady {
			t.Fatalf("Phase = %s (%s), want ready", view.Phase, view.Error)
		}
		r := view.Reservation

		if r.Summary.TotalConsumption != 85 || r.Summary.TotalConsumptionText != "R$ 85,00" {
			t.Errorf("total = %v (%s), want 85", r.Summary.TotalConsumption, r.Summary.TotalConsumptionText)
		}
		if r.Summary.DepartmentCount != 2 || r.Summary.ItemCount != 3 {
			t.Errorf("summary = %+v", r.Summary)
		}
		want := []DepartmentRow{
			{Name: "Bar", Total: 35, TotalText: "R$ 35,00", Count: 2},
			{Name: "Spa", Total: 50, TotalText: "R$ 50,00", Count: 1},
		}
		if !slices.Equal(r.Departments, want) {
			t.Errorf("Departments = %+v, want %+v", r.Departments, want)
		}
		if r.TotalRoomValue != 750.5 || r.TotalRoomValueText != "R$ 750,50" {
			t.Errorf("room value = %v (%s)", r.TotalRoomValue, r.TotalRoomValueText)
		}
		if len(r.Rooms) != 2 || r.Rooms[1].RoomType != "Luxo" {
			t.Errorf("Rooms = %+v", r.Rooms)
		}
		if r.Status.Label != "Confirmada" || r.GuestName != "Maria Silva" {
			t.Errorf("header = %+v / %s", r.Status, r.GuestName)
		}
		if r.NoConsumption {
			t.Error("NoConsumption = true, want false")
		}
		if len(r.Consumption) != 3 || r.Consumption[0].Description != "Caipirinha" {
			t.Errorf("Consumption = %+v", r.Consumption)
		}
		if r.Occupants.Phase != viewstate.PhaseReady || len(r.Occupants.Occupants) != 3 {
			t.Errorf("Occupants = %+v", r.Occupants)
		}
	})

	t.Run("存在しない予約は後続の取得を行わない", func(t *testing.T) {
		m := newFixture()
		view := m.service().ReservationDetail(context.Background(), 999)
		if view.Phase != viewstate.PhaseNotFound {
			t.Fatalf("Phase = %s, want not_found", view.Phase)
		}
		if len(m.guests.getCalls) != 0 || m.consumption.calls != 0 || m.rooms.calls != 0 || m.occupants.calls != 0 {
			t.Errorf("dependent fetches issued: guests=%d consumption=%d rooms=%d occupants=%d",
				len(m.guests.getCalls), m.consumption.calls, m.rooms.calls, m.occupants.calls)
		}
	})

	t.Run("宿泊者が存在しない予約はnot_found", func(t *testing.T) {
		m := newFixture()
		view := m.service().ReservationDetail(context.Background(), 200)
		if view.Phase != viewstate.PhaseNotFound {
			t.Errorf("Phase = %s, want not_found", view.Phase)
		}
	})

	t.Run("消費明細なし", func(t *testing.T) {
		m := newFixture()
		view := m.service().ReservationDetail(context.Background(), 101)
		if view.Phase != viewstate.PhaseReady {
			t.Fatalf("Phase = %s, want ready", view.Phase)
		}
		r := view.Reservation
		if !r.NoConsumption || r.Summary.TotalConsumption != 0 || len(r.Departments) != 0 {
			t.Errorf("reservation = %+v", r)
		}
		if r.Status.Label != "Cancelada" {
			t.Errorf("Status = %+v, want Cancelada", r.Status)
		}
	})

	t.Run("消費明細の取得失敗はfailed", func(t *testing.T) {
		m := newFixture()
		m.consumption.err = errors.New("consumption_lines: connection reset")
		view := m.service().ReservationDetail(context.Background(), 100)
		if view.Phase != viewstate.PhaseFailed {
			t.Fatalf("Phase = %s, want failed", view.Phase)
		}
		if !strings.Contains(view.Error, "connection reset") || view.Reservation != nil {
			t.Errorf("view = %+v", view)
		}
	})

	t.Run("同伴者の失敗は詳細を失敗させない", func(t *testing.T) {
		m := newFixture()
		m.occupants.err = errors.New("occupants unavailable")
		view := m.service().ReservationDetail(context.Background(), 100)
		if view.Phase != viewstate.PhaseReady {
			t.Fatalf("Phase = %s, want ready", view.Phase)
		}
		occ := view.Reservation.Occupants
		if occ.Phase != viewstate.PhaseFailed || !strings.Contains(occ.Error, "occupants unavailable") {
			t.Errorf("Occupants = %+v", occ)
		}
	})

	t.Run("同じコンテナで読み込み直す", func(t *testing.T) {
		m := newFixture()
		c := m.service().NewReservationDetailContainer()
		if state, applied := c.Load(context.Background(), 999); !applied || state.Phase != viewstate.PhaseNotFound {
			t.Fatalf("Load(999) = %s, %v", state.Phase, applied)
		}
		if state, applied := c.Load(context.Background(), 100); !applied || state.Value.ID != 100 {
			t.Fatalf("Load(100) = %s, %v", state.Phase, applied)
		}
	})
}

func TestService_Occupants(t *testing.T) {
	t.Run("代表者を先頭に並べる", func(t *testing.T) {
		m := newFixture()
		view := m.service().Occupants(context.Background(), 100, 42)
		if view.Phase != viewstate.PhaseReady {
			t.Fatalf("Phase = %s, want ready", view.Phase)
		}
		ids := make([]int64, 0, len(view.Occupants))
		for _, o := range view.Occupants {
			ids = append(ids, o.GuestID)
		}
		if !slices.Equal(ids, []int64{42, 7, 3}) {
			t.Errorf("ids = %v, want [42 7 3]", ids)
		}
		if !view.Occupants[0].Primary || !view.Occupants[0].HolderFlag || view.Occupants[1].Primary {
			t.Errorf("flags = %+v", view.Occupants)
		}
		// 宿泊者は1回のクエリでまとめて取得する
		if len(m.guests.listByIDsCalls) != 1 || !slices.Equal(m.guests.listByIDsCalls[0], []int64{7, 3, 42}) {
			t.Errorf("ListByIDs calls = %v", m.guests.listByIDsCalls)
		}
	})

	t.Run("同伴者なしは宿泊者を取得しない", func(t *testing.T) {
		m := newFixture()
		view := m.service().Occupants(context.Background(), 101, 42)
		if view.Phase != viewstate.PhaseReady || len(view.Occupants) != 0 || view.Occupants == nil {
			t.Errorf("view = %+v", view)
		}
		if len(m.guests.listByIDsCalls) != 0 {
			t.Errorf("ListByIDs called %d times", len(m.guests.listByIDsCalls))
		}
	})

	t.Run("宿泊者の取得失敗はfailed", func(t *testing.T) {
		m := newFixture()
		m.guests.listByIDsErr = errors.New("boom")
		view := m.service().Occupants(context.Background(), 100, 42)
		if view.Phase != viewstate.PhaseFailed || view.Error != "failed to list occupant guests: boom" {
			t.Errorf("view = %+v", view)
		}
	})
}

func TestComposer(t *testing.T) {
	m := newFixture()
	c := NewComposer(m.service())

	page := c.Compose(context.Background())
	if page.Mode != ModeGuest || page.GuestSelector == nil || page.Placeholder != GuestPlaceholder {
		t.Fatalf("initial page = %+v", page)
	}
	if page.ReservationSelector != nil || page.GuestDetail != nil {
		t.Errorf("unexpected views in guest placeholder page")
	}

	c.SelectGuest(42)
	page = c.Compose(context.Background())
	if page.GuestDetail == nil || page.GuestDetail.Phase != viewstate.PhaseReady || page.Placeholder != "" {
		t.Fatalf("guest page = %+v", page)
	}
	if !page.GuestSelector.Guests[2].Selected {
		t.Error("selected guest is not marked")
	}

	c.SetMode(ModeReservation)
	page = c.Compose(context.Background())
	if page.Mode != ModeReservation || page.ReservationSelector == nil || page.Placeholder != ReservationPlaceholder {
		t.Fatalf("reservation page = %+v", page)
	}
	if page.GuestSelector != nil || page.GuestDetail != nil {
		t.Error("guest views remain after switching mode")
	}

	c.SelectReservation(100)
	page = c.Compose(context.Background())
	if page.ReservationDetail == nil || page.ReservationDetail.Reservation.ID != 100 {
		t.Fatalf("reservation detail page = %+v", page)
	}

	// モードを戻すと選択はクリアされる
	c.SetMode(ModeGuest)
	page = c.Compose(context.Background())
	if page.Placeholder != GuestPlaceholder || page.GuestDetail != nil {
		t.Errorf("selection not cleared: %+v", page)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{in: "reservation", want: ModeReservation},
		{in: "guest", want: ModeGuest},
		{in: "", want: ModeGuest},
		{in: "unknown", want: ModeGuest},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
