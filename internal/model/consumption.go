package model

import "time"

// ConsumptionLine は予約に計上された消費明細（consumos）です
// Total は保存されている値をそのまま信頼し、数量×単価からの再計算は行いません
type ConsumptionLine struct {
	ID            int64     `db:"item_id" json:"item_id"`
	ReservationID int64     `db:"reserva_id" json:"reserva_id"`
	ConsumedAt    time.Time `db:"data_consumo" json:"data_consumo"`
	Description   Text      `db:"descricao_item" json:"descricao_item"`
	Department    Text      `db:"departamento" json:"departamento"`
	Quantity      int       `db:"quantidade" json:"quantidade"`
	UnitPrice     float64   `db:"valor_unitario" json:"valor_unitario"`
	Total         float64   `db:"valor_total" json:"valor_total"`
	FolioID       *int64    `db:"folio_id" json:"folio_id"`
}
