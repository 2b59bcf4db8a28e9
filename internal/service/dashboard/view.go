package dashboard

import (
	"strings"

	"github.com/uma-arai/hotel-dashboard/internal/format"
	"github.com/uma-arai/hotel-dashboard/internal/model"
	"github.com/uma-arai/hotel-dashboard/internal/status"
	"github.com/uma-arai/hotel-dashboard/internal/viewstate"
)

// NoGuestLabel は宿泊者が結合できなかった予約に表示する名前です
const NoGuestLabel = "Sem hóspede"

const emptyValue = "-"

// GuestOption は宿泊者セレクタの1行です
type GuestOption struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	TaxID    string `json:"tax_id"`
	Email    string `json:"email"`
	Selected bool   `json:"selected"`
}

// GuestSelectorView は宿泊者セレクタの表示内容です
type GuestSelectorView struct {
	Phase     viewstate.Phase `json:"phase"`
	Term      string          `json:"term"`
	Guests    []GuestOption   `json:"guests"`
	NoneFound bool            `json:"none_found"`
}

// ReservationOption は予約セレクタの1行です
type ReservationOption struct {
	ID           int64        `json:"id"`
	GuestName    string       `json:"guest_name"`
	Status       status.Badge `json:"status"`
	CheckIn      string       `json:"check_in"`
	CheckOut     string       `json:"check_out"`
	RoomTypes    string       `json:"room_types"`
	RatePlans    string       `json:"rate_plans"`
	NightlyRates string       `json:"nightly_rates"`
	Selected     bool         `json:"selected"`
}

// ReservationSelectorView は予約セレクタの表示内容です
type ReservationSelectorView struct {
	Phase        viewstate.Phase     `json:"phase"`
	Term         string              `json:"term"`
	Reservations []ReservationOption `json:"reservations"`
	NoneFound    bool                `json:"none_found"`
}

// Address は宿泊者の住所です
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	PostalCode   string `json:"postal_code"`
}

// GuestDetail は宿泊者詳細の内容です
type GuestDetail struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	TaxID          string              `json:"tax_id"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
	Address        Address             `json:"address"`
	RegisteredAt   string              `json:"registered_at"`
	LastReservedAt string              `json:"last_reserved_at"`
	Reservations   []ReservationOption `json:"reservations"`
}

// GuestDetailView は宿泊者詳細画面の状態です
type GuestDetailView struct {
	Phase viewstate.Phase `json:"phase"`
	Error string          `json:"error,omitempty"`
	Guest *GuestDetail    `json:"guest,omitempty"`
}

// RoomBlock は予約に含まれる客室明細1件の表示です
type RoomBlock struct {
	RoomType        string  `json:"room_type"`
	RatePlan        string  `json:"rate_plan"`
	NightlyRate     float64 `json:"nightly_rate"`
	NightlyRateText string  `json:"nightly_rate_text"`
}

// OccupantEntry は同伴者一覧の1行です
type OccupantEntry struct {
	GuestID    int64  `json:"guest_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Primary    bool   `json:"primary"`
	HolderFlag bool   `json:"holder_flag"`
}

// OccupantsView は同伴者一覧の状態です
type OccupantsView struct {
	Phase     viewstate.Phase `json:"phase"`
	Error     string          `json:"error,omitempty"`
	Occupants []OccupantEntry `json:"occupants"`
}

// SummaryCards は消費の集計カードです
type SummaryCards struct {
	ItemCount            int     `json:"item_count"`
	TotalConsumption     float64 `json:"total_consumption"`
	TotalConsumptionText string  `json:"total_consumption_text"`
	DepartmentCount      int     `json:"department_count"`
}

// DepartmentRow は部門別集計の1行です
type DepartmentRow struct {
	Name      string  `json:"name"`
	Total     float64 `json:"total"`
	TotalText string  `json:"total_text"`
	Count     int     `json:"count"`
}

// ConsumptionRow は消費明細表の1行です
type ConsumptionRow struct {
	ID            int64   `json:"id"`
	ConsumedAt    string  `json:"consumed_at"`
	Description   string  `json:"description"`
	Department    string  `json:"department"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	UnitPriceText string  `json:"unit_price_text"`
	Total         float64 `json:"total"`
	TotalText     string  `json:"total_text"`
	FolioID       *int64  `json:"folio_id"`
}

// ReservationDetail は予約詳細と消費明細の内容です
type ReservationDetail struct {
	ID                 int64            `json:"id"`
	Status             status.Badge     `json:"status"`
	GuestID            int64            `json:"guest_id"`
	GuestName          string           `json:"guest_name"`
	GuestEmail         string           `json:"guest_email"`
	GuestPhone         string           `json:"guest_phone"`
	CheckIn            string           `json:"check_in"`
	CheckOut           string           `json:"check_out"`
	Rooms              []RoomBlock      `json:"rooms"`
	TotalRoomValue     float64          `json:"total_room_value"`
	TotalRoomValueText string           `json:"total_room_value_text"`
	Occupants          OccupantsView    `json:"occupants"`
	Summary            SummaryCards     `json:"summary"`
	Departments        []DepartmentRow  `json:"departments"`
	Consumption        []ConsumptionRow `json:"consumption"`
	NoConsumption      bool             `json:"no_consumption"`
}

// ReservationDetailView は予約詳細画面の状態です
type ReservationDetailView struct {
	Phase       viewstate.Phase    `json:"phase"`
	Error       string             `json:"error,omitempty"`
	Reservation *ReservationDetail `json:"reservation,omitempty"`
}

// NewGuestDetailView はコンテナの状態から宿泊者詳細画面の状態を作成します
func NewGuestDetailView(state viewstate.State[*GuestDetail]) GuestDetailView {
	view := GuestDetailView{Phase: state.Phase}
	switch state.Phase {
	case viewstate.PhaseReady:
		view.Guest = state.Value
	case viewstate.PhaseFailed:
		view.Error = state.Message()
	}
	return view
}

// NewReservationDetailView はコンテナの状態から予約詳細画面の状態を作成します
func NewReservationDetailView(state viewstate.State[*ReservationDetail]) ReservationDetailView {
	view := ReservationDetailView{Phase: state.Phase}
	switch state.Phase {
	case viewstate.PhaseReady:
		view.Reservation = state.Value
	case viewstate.PhaseFailed:
		view.Error = state.Message()
	}
	return view
}

func newReservationOption(row model.ReservationRow, vocabulary status.Vocabulary, selectedID int64) ReservationOption {
	name := row.Guest.GuestName()
	if row.Guest.GuestSummary == nil {
		name = NoGuestLabel
	}

	types := make([]string, 0, len(row.Rooms))
	plans := make([]string, 0, len(row.Rooms))
	rates := make([]string, 0, len(row.Rooms))
	for _, room := range row.Rooms {
		types = append(types, orEmpty(string(room.RoomType)))
		plans = append(plans, orEmpty(string(room.RatePlan)))
		rates = append(rates, format.Currency(room.NightlyRate))
	}

	return ReservationOption{
		ID:           row.ID,
		GuestName:    name,
		Status:       vocabulary.Badge(row.Status),
		CheckIn:      format.Date(row.CheckIn),
		CheckOut:     format.Date(row.CheckOut),
		RoomTypes:    joinLabels(types),
		RatePlans:    joinLabels(plans),
		NightlyRates: joinLabels(rates),
		Selected:     row.ID == selectedID,
	}
}

func newRoomBlocks(rooms []model.RoomLine) []RoomBlock {
	blocks := make([]RoomBlock, 0, len(rooms))
	for _, room := range rooms {
		blocks = append(blocks, RoomBlock{
			RoomType:        orEmpty(string(room.RoomType)),
			RatePlan:        orEmpty(string(room.RatePlan)),
			NightlyRate:     room.NightlyRate,
			NightlyRateText: format.Currency(room.NightlyRate),
		})
	}
	return blocks
}

func newConsumptionRows(lines []model.ConsumptionLine) []ConsumptionRow {
	rows := make([]ConsumptionRow, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, ConsumptionRow{
			ID:            line.ID,
			ConsumedAt:    format.DateTime(line.ConsumedAt),
			Description:   string(line.Description),
			Department:    string(line.Department),
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			UnitPriceText: format.Currency(line.UnitPrice),
			Total:         line.Total,
			TotalText:     format.Currency(line.Total),
			FolioID:       line.FolioID,
		})
	}
	return rows
}

func newAddress(g *model.Guest) Address {
	return Address{
		Street:       string(g.Street),
		Number:       string(g.Number),
		Complement:   string(g.Complement),
		Neighborhood: string(g.Neighborhood),
		City:         string(g.City),
		State:        string(g.State),
		Country:      string(g.Country),
		PostalCode:   string(g.PostalCode),
	}
}

func joinLabels(labels []string) string {
	if len(labels) == 0 {
		return emptyValue
	}
	return strings.Join(labels, ", ")
}

func orEmpty(s string) string {
	if s == "" {
		return emptyValue
	}
	return s
}
