// Package status は予約ステータスコードを表示ラベルとバッジの色区分に対応付けます
//
// 宿泊者画面と予約画面で同じ status_reserva に対して異なる対応表が使われています。
// 既存データの表示が変わらないよう、2つの表は統合せずにそれぞれの画面で使い分けます。
package status

// Category はバッジの色区分です
type Category string

const (
	CategoryRed     Category = "red"
	CategoryYellow  Category = "yellow"
	CategoryGreen   Category = "green"
	CategoryBlue    Category = "blue"
	CategoryNeutral Category = "gray"
)

// UnknownLabel は対応表に無いコードに表示するラベルです
const UnknownLabel = "Desconhecido"

// Badge はステータスの表示ラベルと色区分です
type Badge struct {
	Code     int      `json:"code"`
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

type entry struct {
	label    string
	category Category
}

// Vocabulary はステータスコードの対応表です
type Vocabulary struct {
	name    string
	entries map[int]entry
}

// Guest は宿泊者画面（宿泊者詳細・宿泊者の予約一覧）で使う対応表です
var Guest = Vocabulary{
	name: "guest",
	entries: map[int]entry{
		0: {"Cancelada", CategoryRed},
		1: {"Confirmada", CategoryYellow},
		2: {"Check-in", CategoryGreen},
		3: {"Check-out", CategoryBlue},
	},
}

// Reservation は予約画面（全予約一覧・予約詳細）で使う対応表です
var Reservation = Vocabulary{
	name: "reservation",
	entries: map[int]entry{
		1: {"Confirmada", CategoryGreen},
		2: {"Cancelada", CategoryRed},
		3: {"Realizada", CategoryBlue},
		4: {"Bloqueio", CategoryNeutral},
	},
}

// Name は対応表の名前を返します
func (v Vocabulary) Name() string {
	return v.name
}

// Badge はコードに対応するバッジを返します
// 対応表に無いコードは Desconhecido と中立の色区分になります
func (v Vocabulary) Badge(code int) Badge {
	e, ok := v.entries[code]
	if !ok {
		return Badge{Code: code, Label: UnknownLabel, Category: CategoryNeutral}
	}
	return Badge{Code: code, Label: e.label, Category: e.category}
}
