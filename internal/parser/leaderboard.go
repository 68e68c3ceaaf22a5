package parser

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"maniboard/internal/model"
)

// ErrMissingColumn 排行榜缺少必要欄位
var ErrMissingColumn = errors.New("leaderboard column missing")

// StoreSuffix 門市名称结尾的类别标记
const StoreSuffix = "店"

// SummaryKeywords 上游汇总行使用的人员名称（区分大小写）
var SummaryKeywords = []string{"合計", "總計", "小計", "總合計", "全部"}

// SummaryRowFunc 判断一行是否为門市层级的汇总行
type SummaryRowFunc func(store, person string) bool

// IsStoreSummaryRow 默认判定：关键字，或人员 = 門市名 / 去掉结尾「店」的門市名
func IsStoreSummaryRow(store, person string) bool {
	for _, kw := range SummaryKeywords {
		if person == kw {
			return true
		}
	}
	if person == store {
		return true
	}
	return person == strings.TrimSuffix(store, StoreSuffix)
}

// LeaderboardColumns 排行榜的维度栏位名
type LeaderboardColumns struct {
	Month  string `toml:"month"`
	Store  string `toml:"store"`
	Person string `toml:"person"`
}

// DefaultLeaderboardColumns 默认栏位名
func DefaultLeaderboardColumns() LeaderboardColumns {
	return LeaderboardColumns{
		Month:  "月份",
		Store:  "門市",
		Person: "人員",
	}
}

// LeaderboardCleaner 排行榜清洗器
type LeaderboardCleaner struct {
	columns   LeaderboardColumns
	isSummary SummaryRowFunc
}

// NewLeaderboardCleaner 创建清洗器；isSummary 为 nil 时使用 IsStoreSummaryRow
func NewLeaderboardCleaner(columns LeaderboardColumns, isSummary SummaryRowFunc) *LeaderboardCleaner {
	def := DefaultLeaderboardColumns()
	if columns.Month == "" {
		columns.Month = def.Month
	}
	if columns.Store == "" {
		columns.Store = def.Store
	}
	if columns.Person == "" {
		columns.Person = def.Person
	}
	if isSummary == nil {
		isSummary = IsStoreSummaryRow
	}
	return &LeaderboardCleaner{columns: columns, isSummary: isSummary}
}

// Clean 清洗排行榜原始网格（第 1 列为标题）
// 月份、門市向下填充；人員只去空白；汇总行剔除；其余栏位转为数值
func (c *LeaderboardCleaner) Clean(grid model.Grid) (*model.Leaderboard, error) {
	if len(grid) == 0 {
		return nil, ErrMalformedSheet
	}

	header := grid[0]
	monthIdx := findColumn(header, c.columns.Month)
	storeIdx := findColumn(header, c.columns.Store)
	personIdx := findColumn(header, c.columns.Person)
	required := []struct {
		name string
		idx  int
	}{
		{c.columns.Month, monthIdx},
		{c.columns.Store, storeIdx},
		{c.columns.Person, personIdx},
	}
	for _, r := range required {
		if r.idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, r.name)
		}
	}

	var metrics []Column
	for _, col := range ReconcileColumns(header) {
		if col.Index == monthIdx || col.Index == storeIdx || col.Index == personIdx {
			continue
		}
		metrics = append(metrics, col)
	}

	out := &model.Leaderboard{
		Metrics: make([]string, len(metrics)),
		Facts:   []model.LeaderboardFact{},
	}
	for i, m := range metrics {
		out.Metrics[i] = m.Name
	}

	var lastMonth, lastStore string
	for ri := 1; ri < len(grid); ri++ {
		month := strings.TrimSpace(grid.Cell(ri, monthIdx))
		if IsBlank(month) {
			month = lastMonth
		} else {
			lastMonth = month
		}
		store := strings.TrimSpace(grid.Cell(ri, storeIdx))
		if IsBlank(store) {
			store = lastStore
		} else {
			lastStore = store
		}

		person := strings.TrimSpace(grid.Cell(ri, personIdx))
		if person == "" || c.isSummary(store, person) {
			out.Dropped++
			continue
		}

		fact := model.LeaderboardFact{
			Month:   month,
			Store:   store,
			Person:  person,
			Metrics: make(map[string]float64, len(metrics)),
		}
		fact.MonthKey, fact.HasMonth = CanonicalMonth(month)
		for _, m := range metrics {
			fact.Metrics[m.Name], _ = CoerceFloat(grid.Cell(ri, m.Index))
		}
		out.Facts = append(out.Facts, fact)
	}

	return out, nil
}

func findColumn(header []string, name string) int {
	want := NormalizeColumnName(name)
	for i, h := range header {
		if NormalizeColumnName(h) == want {
			return i
		}
	}
	return -1
}

var monthLayouts = []string{
	"2006-01",
	"2006-1",
	"2006/01",
	"2006/1",
	"2006.01",
	"2006.1",
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	time.RFC3339,
	"Jan 2006",
	"January 2006",
}

// 试算表序列日期的合理区间（约 1954 ~ 2119 年）
const (
	minSerialDay = 20000
	maxSerialDay = 80000
)

var sheetsEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// CanonicalMonth 将月份文本转为 YYYY-MM，无法识别时 ok=false
func CanonicalMonth(v string) (string, bool) {
	s := strings.TrimSpace(v)
	if IsBlank(s) {
		return "", false
	}
	if y, m, found := ExtractYearMonth(s); found && m >= 1 && m <= 12 {
		return fmt.Sprintf("%04d-%02d", y, m), true
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01"), true
		}
	}
	if f, ok := ParseNumber(s); ok && f >= minSerialDay && f <= maxSerialDay {
		t := sheetsEpoch.AddDate(0, 0, int(math.Trunc(f)))
		return t.Format("2006-01"), true
	}
	return "", false
}
