// Package aggregate は取得した行から画面用の集計値と並び替え・絞り込み結果を導出します
// すべて副作用のない関数で、入力が同じであれば何度再計算しても同じ結果になります
package aggregate

import "github.com/uma-arai/hotel-dashboard/internal/model"

// DepartmentTotal は部門ごとの消費合計です
type DepartmentTotal struct {
	Department string  `json:"department"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
}

// ConsumptionSummary は予約の消費明細の集計結果です
// ByDepartment は部門が最初に現れた順に並びます
type ConsumptionSummary struct {
	ItemCount        int               `json:"item_count"`
	TotalConsumption float64           `json:"total_consumption"`
	ByDepartment     []DepartmentTotal `json:"by_department"`
	DepartmentCount  int               `json:"department_count"`
}

// SummarizeConsumption は消費明細を1回の走査で集計します
// 合計には保存されている valor_total をそのまま使います
func SummarizeConsumption(lines []model.ConsumptionLine) ConsumptionSummary {
	summary := ConsumptionSummary{
		ItemCount:    len(lines),
		ByDepartment: []DepartmentTotal{},
	}

	index := make(map[string]int)
	for _, line := range lines {
		summary.TotalConsumption += line.Total

		dept := string(line.Department)
		i, ok := index[dept]
		if !ok {
			i = len(summary.ByDepartment)
			index[dept] = i
			summary.ByDepartment = append(summary.ByDepartment, DepartmentTotal{Department: dept})
		}
		summary.ByDepartment[i].Total += line.Total
		summary.ByDepartment[i].Count++
	}
	summary.DepartmentCount = len(summary.ByDepartment)

	return summary
}

// TotalRoomValue は予約の全客室明細の日額を合計します
func TotalRoomValue(rooms []model.RoomLine) float64 {
	var total float64
	for _, room := range rooms {
		total += room.NightlyRate
	}
	return total
}
