package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// RoomLine は予約に含まれる客室・料金プランの明細（reserva_quartos）です
// 1つの予約が複数の明細を持つことがあります
type RoomLine struct {
	ID            int64     `db:"id" json:"id"`
	ReservationID int64     `db:"reserva_id" json:"reserva_id"`
	RoomType      Text      `db:"tipo_quarto" json:"tipo_quarto"`
	RatePlan      Text      `db:"plano_tarifario" json:"plano_tarifario"`
	NightlyRate   float64   `db:"valor_diarias" json:"valor_diarias"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// RoomLines は json_agg で取得した客室明細の配列を受け取ります
type RoomLines []RoomLine

// Scan はsql.Scannerを実装します
func (r *RoomLines) Scan(src interface{}) error {
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if b == nil {
		*r = nil
		return nil
	}
	var decoded []roomLineJSON
	if err := json.Unmarshal(b, &decoded); err != nil {
		return fmt.Errorf("failed to decode joined room lines: %w", err)
	}
	lines := make([]RoomLine, len(decoded))
	for i, d := range decoded {
		lines[i] = d.RoomLine
		lines[i].CreatedAt = time.Time(d.CreatedAt)
	}
	*r = lines
	return nil
}

// roomLineJSON は row_to_json / json_agg の出力を受け取るための型です
// created_at はタイムゾーン無しの timestamp 列でも読み込めるようにします
type roomLineJSON struct {
	RoomLine
	CreatedAt jsonTimestamp `json:"created_at"`
}

// jsonTimestamp はPostgreSQLがJSONに出力する timestamp / timestamptz を受け取ります
type jsonTimestamp time.Time

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// UnmarshalJSON はjson.Unmarshalerを実装します
func (ts *jsonTimestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*ts = jsonTimestamp{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts = jsonTimestamp(t)
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}
