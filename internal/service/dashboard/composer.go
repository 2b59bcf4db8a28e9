package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Mode はダッシュボードの表示モードです
type Mode string

const (
	ModeGuest       Mode = "guest"
	ModeReservation Mode = "reservation"
)

// ParseMode は文字列を表示モードに変換します。不明な値は宿泊者モードになります
func ParseMode(s string) Mode {
	if Mode(s) == ModeReservation {
		return ModeReservation
	}
	return ModeGuest
}

const (
	GuestPlaceholder       = "Selecione um Hóspede"
	ReservationPlaceholder = "Selecione uma Reserva"
)

// Page はダッシュボード1画面分の表示内容です
// 現在のモードに対応するセレクタと詳細（またはプレースホルダ）だけが設定されます
type Page struct {
	Mode                Mode                     `json:"mode"`
	GuestSelector       *GuestSelectorView       `json:"guest_selector,omitempty"`
	ReservationSelector *ReservationSelectorView `json:"reservation_selector,omitempty"`
	GuestDetail         *GuestDetailView         `json:"guest_detail,omitempty"`
	ReservationDetail   *ReservationDetailView   `json:"reservation_detail,omitempty"`
	Placeholder         string                   `json:"placeholder,omitempty"`
}

// Views はComposerが使う画面の組み立て処理です。*Service が実装します
type Views interface {
	GuestSelector(ctx context.Context, term string, selectedID int64) GuestSelectorView
	ReservationSelector(ctx context.Context, term string, selectedID int64) ReservationSelectorView
	GuestDetail(ctx context.Context, guestID int64) GuestDetailView
	ReservationDetail(ctx context.Context, reservationID int64) ReservationDetailView
}

// Composer はモードと選択中のIDを保持し、画面を組み立てます
// IDが0の場合は未選択として扱います
type Composer struct {
	views         Views
	mode          Mode
	term          string
	guestID       int64
	reservationID int64
}

// NewComposer は宿泊者モードのComposerを作成します
func NewComposer(views Views) *Composer {
	return &Composer{views: views, mode: ModeGuest}
}

// Mode は現在の表示モードを返します
func (c *Composer) Mode() Mode {
	return c.mode
}

// SetMode は表示モードを切り替え、選択中の宿泊者と予約をクリアします
func (c *Composer) SetMode(mode Mode) {
	c.mode = ParseMode(string(mode))
	c.guestID = 0
	c.reservationID = 0
}

// SetSearch はセレクタの検索語を設定します
func (c *Composer) SetSearch(term string) {
	c.term = term
}

// SelectGuest は宿泊者を選択します
func (c *Composer) SelectGuest(guestID int64) {
	c.guestID = guestID
}

// SelectReservation は予約を選択します
func (c *Composer) SelectReservation(reservationID int64) {
	c.reservationID = reservationID
}

// Compose はセレクタと詳細を並行して組み立てます
func (c *Composer) Compose(ctx context.Context) Page {
	page := Page{Mode: c.mode}
	eg, egCtx := errgroup.WithContext(ctx)

	switch c.mode {
	case ModeReservation:
		eg.Go(func() error {
			view := c.views.ReservationSelector(egCtx, c.term, c.reservationID)
			page.ReservationSelector = &view
			return nil
		})
		if c.reservationID == 0 {
			page.Placeholder = ReservationPlaceholder
			break
		}
		eg.Go(func() error {
			view := c.views.ReservationDetail(egCtx, c.reservationID)
			page.ReservationDetail = &view
			return nil
		})
	default:
		eg.Go(func() error {
			view := c.views.GuestSelector(egCtx, c.term, c.guestID)
			page.GuestSelector = &view
			return nil
		})
		if c.guestID == 0 {
			page.Placeholder = GuestPlaceholder
			break
		}
		eg.Go(func() error {
			view := c.views.GuestDetail(egCtx, c.guestID)
			page.GuestDetail = &view
			return nil
		})
	}

	// 各画面はエラーを状態として持つため Wait がエラーを返すことはない
	_ = eg.Wait()
	return page
}
