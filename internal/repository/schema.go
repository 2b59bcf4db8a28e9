package repository

import "slices"

// Table はストア上のテーブル名です
type Table string

const (
	TableGuests           Table = "guests"
	TableReservations     Table = "reservations"
	TableRoomLines        Table = "room_lines"
	TableOccupants        Table = "reservation_occupants"
	TableConsumptionLines Table = "consumption_lines"
)

// tableDef はテーブルの主キーと選択可能な列の定義です
// クエリに埋め込む識別子はすべてここに定義されたものに限定されます
type tableDef struct {
	key     string
	columns []string
}

var schema = map[Table]tableDef{
	TableGuests: {
		key: "hospede_id",
		columns: []string{
			"hospede_id", "nome", "cpf", "email", "telefone",
			"rua", "numero", "complemento", "bairro", "cidade", "estado", "pais", "cep",
			"data_cadastro", "ultima_reserva",
		},
	},
	TableReservations: {
		key:     "reserva_id",
		columns: []string{"reserva_id", "hospede_id", "data_checkin", "data_checkout", "status_reserva"},
	},
	TableRoomLines: {
		key:     "id",
		columns: []string{"id", "reserva_id", "tipo_quarto", "plano_tarifario", "valor_diarias", "created_at"},
	},
	TableOccupants: {
		key:     "id",
		columns: []string{"id", "created_at", "reserva_id", "hospede_id", "eh_titular"},
	},
	TableConsumptionLines: {
		key: "item_id",
		columns: []string{
			"item_id", "reserva_id", "data_consumo", "descricao_item", "departamento",
			"quantidade", "valor_unitario", "valor_total", "folio_id",
		},
	},
}

func (s tableDef) hasColumn(column string) bool {
	return slices.Contains(s.columns, column)
}
