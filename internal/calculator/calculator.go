package calculator

import (
	"sort"

	"maniboard/internal/model"
)

// Indicator 指标定义
type Indicator struct {
	ID     string  `json:"id"`     // 指标ID（即栏位名）
	Name   string  `json:"name"`   // 指标名称
	Value  float64 `json:"value"`  // 指标值
	Format string  `json:"format"` // money/count/ratio
	Found  bool    `json:"found"`  // 分页中是否有该栏位
}

// IndicatorGroup 指标分组
type IndicatorGroup struct {
	Name       string      `json:"name"`       // 分组名称
	Indicators []Indicator `json:"indicators"` // 指标列表
}

// SumColumn 栏位合计；栏位不存在时为 0
func SumColumn(table *model.NormalizedSheetTable, name string) float64 {
	idx := table.ColumnIndex(name)
	if idx < 0 {
		return 0
	}
	sum := 0.0
	for _, r := range table.Rows {
		sum += r.Values[idx]
	}
	return sum
}

// CalculateGroups 按分组计算看板指标
func CalculateGroups(table *model.NormalizedSheetTable, groups []model.MetricGroup) []IndicatorGroup {
	out := make([]IndicatorGroup, 0, len(groups))
	for _, g := range groups {
		ig := IndicatorGroup{
			Name:       g.Name,
			Indicators: make([]Indicator, 0, len(g.Metrics)),
		}
		for _, m := range g.Metrics {
			ig.Indicators = append(ig.Indicators, Indicator{
				ID:     m,
				Name:   m,
				Value:  SumColumn(table, m),
				Format: g.Format,
				Found:  table.ColumnIndex(m) >= 0,
			})
		}
		out = append(out, ig)
	}
	return out
}

// DailySeries 按日期汇总指标，日期升序；空日期不计
func DailySeries(table *model.NormalizedSheetTable, metric string) []model.DailyPoint {
	idx := table.ColumnIndex(metric)
	if idx < 0 {
		return nil
	}

	sums := make(map[string]float64)
	for _, r := range table.Rows {
		if !r.HasDate {
			continue
		}
		sums[r.DateString()] += r.Values[idx]
	}

	out := make([]model.DailyPoint, 0, len(sums))
	for d, v := range sums {
		out = append(out, model.DailyPoint{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// PositiveMix 营收结构：只保留合计为正的指标
func PositiveMix(table *model.NormalizedSheetTable, metrics []string) []model.RankItem {
	out := make([]model.RankItem, 0, len(metrics))
	for _, m := range metrics {
		if v := SumColumn(table, m); v > 0 {
			out = append(out, model.RankItem{Label: m, Value: v})
		}
	}
	return out
}
