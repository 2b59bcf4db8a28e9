// Package format は金額と日付を画面表示用の文字列に整形します
package format

import (
	"math"
	"sync"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const currencySymbol = "R$"

var (
	printer = message.NewPrinter(language.BrazilianPortuguese)
	scale   = currencyScale(currency.BRL)

	mu       sync.RWMutex
	location = time.Local
)

func currencyScale(unit currency.Unit) int {
	s, _ := currency.Standard.Rounding(unit)
	return s
}

// SetLocation は日時の表示に使うタイムゾーンを設定します
func SetLocation(loc *time.Location) {
	if loc == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	location = loc
}

// Location は日時の表示に使うタイムゾーンを返します
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return location
}

// Currency は金額をレアルの通貨表記（例: R$ 1.234,56）に整形します
// 符号は表示桁数に丸めた後の値で判定するため、-0,001 は R$ 0,00 になります
func Currency(v float64) string {
	unit := math.Pow10(scale)
	v = math.Round(v*unit) / unit
	sign := ""
	if v < 0 {
		sign = "-"
	}
	v = math.Abs(v)
	return sign + currencySymbol + " " + printer.Sprintf("%v", number.Decimal(v, number.Scale(scale)))
}

// Date は日付を dd/mm/yyyy に整形します
// 日付型の列は時刻を持たないため、タイムゾーンの変換は行いません
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// LocalDate は時刻を持つ列を表示用のタイムゾーンの日付 dd/mm/yyyy に整形します
func LocalDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Location()).Format("02/01/2006")
}

// DateTime は日時を表示用のタイムゾーンで dd/mm/yyyy hh:mm に整形します
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Location()).Format("02/01/2006 15:04")
}
