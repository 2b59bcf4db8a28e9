package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Text はNULL許容のテキスト列を表します
// NULLは空文字列として扱います
type Text string

// Scan はsql.Scannerを実装します
func (t *Text) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(v)
	case []byte:
		*t = Text(v)
	default:
		return fmt.Errorf("unsupported type for Text: %T", src)
	}
	return nil
}

// Value はdriver.Valuerを実装します
func (t Text) Value() (driver.Value, error) {
	return string(t), nil
}

// Guest は宿泊者（hospedes）のレコードです
type Guest struct {
	ID             int64      `db:"hospede_id" json:"hospede_id"`
	Name           string     `db:"nome" json:"nome"`
	TaxID          Text       `db:"cpf" json:"cpf"`
	Email          Text       `db:"email" json:"email"`
	Phone          Text       `db:"telefone" json:"telefone"`
	Street         Text       `db:"rua" json:"rua"`
	Number         Text       `db:"numero" json:"numero"`
	Complement     Text       `db:"complemento" json:"complemento"`
	Neighborhood   Text       `db:"bairro" json:"bairro"`
	City           Text       `db:"cidade" json:"cidade"`
	State          Text       `db:"estado" json:"estado"`
	Country        Text       `db:"pais" json:"pais"`
	PostalCode     Text       `db:"cep" json:"cep"`
	RegisteredAt   time.Time  `db:"data_cadastro" json:"data_cadastro"`
	LastReservedAt *time.Time `db:"ultima_reserva" json:"ultima_reserva"`
}

// GuestSummary は結合クエリで予約に付随して取得する宿泊者の要約です
// row_to_json の結果をそのまま受け取ります
type GuestSummary struct {
	ID    int64  `json:"hospede_id"`
	Name  string `json:"nome"`
	TaxID Text   `json:"cpf"`
	Email Text   `json:"email"`
}
