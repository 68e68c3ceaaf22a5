package model

// LeaderboardFact 排行榜单行事实（月份 × 門市 × 人員）
type LeaderboardFact struct {
	Month    string             `json:"month"`    // 向下填充后的原始月份文本
	MonthKey string             `json:"monthKey"` // YYYY-MM，无法解析时为空
	HasMonth bool               `json:"hasMonth"`
	Store    string             `json:"store"`
	Person   string             `json:"person"`
	Metrics  map[string]float64 `json:"metrics"`
}

// Metric 取指标值，缺失视为 0
func (f LeaderboardFact) Metric(name string) float64 {
	return f.Metrics[name]
}

// Leaderboard 清洗后的排行榜
type Leaderboard struct {
	Metrics []string          `json:"metrics"`
	Facts   []LeaderboardFact `json:"facts"`
	Dropped int               `json:"dropped"` // 被剔除的汇总行数量
}

// Entry 分组汇总后的一项
type Entry struct {
	Label   string             `json:"label"`
	Metrics map[string]float64 `json:"metrics"`
}

// RankItem 排名结果
type RankItem struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
