package model

import "time"

// Occupant は予約と宿泊者を結びつける同伴者（reserva_ocupantes）のレコードです
// 代表者は慣例として予約の hospede_id と一致しますが、ここでは整合性を検証しません
type Occupant struct {
	ID            int64     `db:"id" json:"id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	ReservationID int64     `db:"reserva_id" json:"reserva_id"`
	GuestID       int64     `db:"hospede_id" json:"hospede_id"`
	IsHolder      bool      `db:"eh_titular" json:"eh_titular"`
}
