package aggregate

import "github.com/uma-arai/hotel-dashboard/internal/model"

// PrimaryFirst は代表者を先頭に移動した新しいスライスを返します
// 代表者以外の相対順序は入力のまま保たれます
func PrimaryFirst(guests []model.Guest, primaryGuestID int64) []model.Guest {
	out := make([]model.Guest, 0, len(guests))
	for _, g := range guests {
		if g.ID == primaryGuestID {
			out = append(out, g)
		}
	}
	for _, g := range guests {
		if g.ID != primaryGuestID {
			out = append(out, g)
		}
	}
	return out
}
