package model

// MetricGroup 看板上的一组指标
type MetricGroup struct {
	Name    string   `json:"name" toml:"name"`
	Metrics []string `json:"metrics" toml:"metrics"`
	Format  string   `json:"format" toml:"format"` // money/count/ratio
}

// DefaultMetricGroups 默认看板分组
func DefaultMetricGroups() []MetricGroup {
	return []MetricGroup{
		{
			Name:    "營收與獲利",
			Metrics: []string{"毛利", "配件營收", "保險營收"},
			Format:  "money",
		},
		{
			Name:    "關鍵營運指標",
			Metrics: []string{"門號", "來客數", "GOOGLE 評論", "生活圈"},
			Format:  "count",
		},
		{
			Name:    "手機與硬體銷售/庫存",
			Metrics: []string{"庫存手機", "VIVO手機", "蘋果手機", "蘋果平板+手錶"},
			Format:  "count",
		},
		{
			Name:    "遠傳指標",
			Metrics: []string{"遠傳續約累積GAP", "遠傳升續率", "遠傳平續率", "綜合指標"},
			Format:  "ratio",
		},
	}
}

// DefaultTrendMetric 日趋势图使用的指标
const DefaultTrendMetric = "毛利"

// DefaultMixMetrics 营收结构（圆饼图）使用的指标
func DefaultMixMetrics() []string {
	return []string{"毛利", "配件營收", "保險營收"}
}

// DailyPoint 日趋势的一点
type DailyPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}
