package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Reservation は予約（reservas）のレコードです
// チェックアウト日 >= チェックイン日 はストア側で保証されている前提です
type Reservation struct {
	ID       int64     `db:"reserva_id" json:"reserva_id"`
	GuestID  int64     `db:"hospede_id" json:"hospede_id"`
	CheckIn  time.Time `db:"data_checkin" json:"data_checkin"`
	CheckOut time.Time `db:"data_checkout" json:"data_checkout"`
	Status   int       `db:"status_reserva" json:"status_reserva"`
}

// ReservationRow は予約に宿泊者と客室明細を結合した一覧用の行です
// Guest は宿泊者が存在しない場合 nil になります
type ReservationRow struct {
	Reservation
	Guest JoinedGuest `db:"guest" json:"guest"`
	Rooms RoomLines   `db:"rooms" json:"rooms"`
}

// JoinedGuest は row_to_json で取得した宿泊者を受け取ります
type JoinedGuest struct {
	*GuestSummary
}

// Scan はsql.Scannerを実装します
func (g *JoinedGuest) Scan(src interface{}) error {
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if b == nil {
		g.GuestSummary = nil
		return nil
	}
	var summary GuestSummary
	if err := json.Unmarshal(b, &summary); err != nil {
		return fmt.Errorf("failed to decode joined guest: %w", err)
	}
	g.GuestSummary = &summary
	return nil
}

// MarshalJSON は宿泊者が無い場合に null を出力します
func (g JoinedGuest) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.GuestSummary)
}

// GuestName は宿泊者名を返します。宿泊者が無い場合は空文字列です
func (g JoinedGuest) GuestName() string {
	if g.GuestSummary == nil {
		return ""
	}
	return g.GuestSummary.Name
}

func jsonBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported type for json column: %T", src)
	}
}
