package aggregate

import (
	"strconv"
	"strings"

	"github.com/uma-arai/hotel-dashboard/internal/model"
)

// FilterGuests は氏名・CPF・メールアドレスのいずれかに検索語を含む宿泊者を返します
// 大文字小文字は区別しません。検索語が空の場合は入力をそのまま返します
func FilterGuests(guests []model.Guest, term string) []model.Guest {
	if term == "" {
		return guests
	}

	needle := strings.ToLower(term)
	out := make([]model.Guest, 0, len(guests))
	for _, g := range guests {
		if containsFold(g.Name, needle) ||
			containsFold(string(g.TaxID), needle) ||
			containsFold(string(g.Email), needle) {
			out = append(out, g)
		}
	}
	return out
}

// FilterReservations は宿泊者名に検索語を含むか、予約IDの10進表記に検索語を含む予約を返します
func FilterReservations(rows []model.ReservationRow, term string) []model.ReservationRow {
	if term == "" {
		return rows
	}

	needle := strings.ToLower(term)
	out := make([]model.ReservationRow, 0, len(rows))
	for _, r := range rows {
		if containsFold(r.Guest.GuestName(), needle) ||
			strings.Contains(strconv.FormatInt(r.ID, 10), term) {
			out = append(out, r)
		}
	}
	return out
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
