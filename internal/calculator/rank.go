package calculator

import (
	"sort"

	"maniboard/internal/model"
)

// SumByStore 全公司视图：按門市汇总所有指标
// month 为空表示不过滤；不为空时无法解析月份的事实会被排除
func SumByStore(facts []model.LeaderboardFact, month string) []model.Entry {
	return groupSum(facts, month, func(f model.LeaderboardFact) (string, bool) {
		return f.Store, true
	})
}

// SumByPerson 門市视图：指定門市内按人員汇总
func SumByPerson(facts []model.LeaderboardFact, store, month string) []model.Entry {
	return groupSum(facts, month, func(f model.LeaderboardFact) (string, bool) {
		return f.Person, f.Store == store
	})
}

// groupSum 分组保持首次出现的顺序，使排名平手时沿用输入顺序
func groupSum(facts []model.LeaderboardFact, month string, key func(model.LeaderboardFact) (string, bool)) []model.Entry {
	index := make(map[string]int)
	var out []model.Entry
	for _, f := range facts {
		if month != "" && (!f.HasMonth || f.MonthKey != month) {
			continue
		}
		label, ok := key(f)
		if !ok {
			continue
		}
		i, seen := index[label]
		if !seen {
			i = len(out)
			index[label] = i
			out = append(out, model.Entry{Label: label, Metrics: make(map[string]float64)})
		}
		for m, v := range f.Metrics {
			out[i].Metrics[m] += v
		}
	}
	return out
}

// Rank 按指标降序排名，平手保持原相对顺序，取前 topN（topN <= 0 不截断）
// 缺少该指标的项按 0 计，不会被丢弃
func Rank(entries []model.Entry, metric string, topN int) []model.RankItem {
	items := make([]model.RankItem, len(entries))
	for i, e := range entries {
		items[i] = model.RankItem{Label: e.Label, Value: e.Metrics[metric]}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})
	if topN > 0 && len(items) > topN {
		return items[:topN]
	}
	return items
}

// Months 排行榜中出现过的月份（YYYY-MM，降序）
func Months(facts []model.LeaderboardFact) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range facts {
		if !f.HasMonth || seen[f.MonthKey] {
			continue
		}
		seen[f.MonthKey] = true
		out = append(out, f.MonthKey)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// Stores 排行榜中出现过的門市（首次出现顺序）
func Stores(facts []model.LeaderboardFact) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range facts {
		if f.Store == "" || seen[f.Store] {
			continue
		}
		seen[f.Store] = true
		out = append(out, f.Store)
	}
	return out
}
