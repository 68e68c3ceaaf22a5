package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"maniboard/internal/cache"
	"maniboard/internal/calculator"
	"maniboard/internal/model"
	"maniboard/internal/parser"
	"maniboard/internal/sheets"
)

var (
	// ErrNoData 选择的分页/试算表不存在或无法使用
	ErrNoData = errors.New("此選擇無資料")
	// ErrUnknownBranch 不在可选清单中的分店
	ErrUnknownBranch = errors.New("未知的分店")
	// ErrNotConfigured 缺少试算表设定
	ErrNotConfigured = errors.New("尚未設定試算表")
)

// AllBranches 全公司汇总分页
const AllBranches = "ALL"

// Options 看板服务选项
type Options struct {
	SpreadsheetID          string
	LeaderboardSpreadsheet string
	LeaderboardSheet       string
	Branches               []string
	Groups                 []model.MetricGroup
	TrendMetric            string
	MixMetrics             []string
	TopN                   int
}

// Service 看板服务：读取 -> 缓存 -> 规范化 -> 汇总
type Service struct {
	reader     sheets.Reader
	tables     *cache.TTL[*model.NormalizedSheetTable]
	boards     *cache.TTL[*model.Leaderboard]
	normalizer *parser.Normalizer
	cleaner    *parser.LeaderboardCleaner
	opts       Options
}

// NewService 创建看板服务；缓存实例由调用方传入
func NewService(
	reader sheets.Reader,
	tables *cache.TTL[*model.NormalizedSheetTable],
	boards *cache.TTL[*model.Leaderboard],
	normalizer *parser.Normalizer,
	cleaner *parser.LeaderboardCleaner,
	opts Options,
) *Service {
	if opts.TrendMetric == "" {
		opts.TrendMetric = model.DefaultTrendMetric
	}
	if opts.MixMetrics == nil {
		opts.MixMetrics = model.DefaultMixMetrics()
	}
	if opts.Groups == nil {
		opts.Groups = model.DefaultMetricGroups()
	}
	return &Service{
		reader:     reader,
		tables:     tables,
		boards:     boards,
		normalizer: normalizer,
		cleaner:    cleaner,
		opts:       opts,
	}
}

// Branches 可选分店
func (s *Service) Branches() []string {
	return s.opts.Branches
}

func (s *Service) knownBranch(branch string) bool {
	if len(s.opts.Branches) == 0 {
		return branch != ""
	}
	for _, b := range s.opts.Branches {
		if b == branch {
			return true
		}
	}
	return false
}

// Table 读取并规范化分店分页（10 分钟内不重复读取）
func (s *Service) Table(ctx context.Context, branch string) (*model.NormalizedSheetTable, error) {
	if s.opts.SpreadsheetID == "" {
		return nil, ErrNotConfigured
	}
	if !s.knownBranch(branch) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBranch, branch)
	}

	key := cache.Key{Spreadsheet: s.opts.SpreadsheetID, Sheet: branch}
	return s.tables.GetOrCompute(ctx, key, func(ctx context.Context) (*model.NormalizedSheetTable, error) {
		grid, err := s.reader.Read(ctx, key.Spreadsheet, key.Sheet)
		if err != nil {
			return nil, mapReadError(err)
		}
		table, err := s.normalizer.Normalize(grid)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoData, err)
		}
		if n := table.CoercedCells(); n > 0 {
			log.Printf("分页 %s 有 %d 个单元格无法解析为数字，已按 0 计", branch, n)
		}
		return table, nil
	})
}

// Leaderboard 读取并清洗排行榜
func (s *Service) Leaderboard(ctx context.Context) (*model.Leaderboard, error) {
	if s.opts.LeaderboardSpreadsheet == "" || s.opts.LeaderboardSheet == "" {
		return nil, ErrNotConfigured
	}

	key := cache.Key{Spreadsheet: s.opts.LeaderboardSpreadsheet, Sheet: s.opts.LeaderboardSheet}
	return s.boards.GetOrCompute(ctx, key, func(ctx context.Context) (*model.Leaderboard, error) {
		grid, err := s.reader.Read(ctx, key.Spreadsheet, key.Sheet)
		if err != nil {
			return nil, mapReadError(err)
		}
		lb, err := s.cleaner.Clean(grid)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoData, err)
		}
		return lb, nil
	})
}

func mapReadError(err error) error {
	if errors.Is(err, sheets.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNoData, err)
	}
	return err
}

// DetailRow 明细表的一行
type DetailRow struct {
	Date   string    `json:"date"`
	Values []float64 `json:"values"`
}

// BranchView 分店看板
type BranchView struct {
	Branch       string                      `json:"branch"`
	Meta         model.SheetMetadata         `json:"meta"`
	Empty        bool                        `json:"empty"`
	Groups       []calculator.IndicatorGroup `json:"groups"`
	Trend        []model.DailyPoint          `json:"trend"`
	TrendMetric  string                      `json:"trendMetric"`
	Mix          []model.RankItem            `json:"mix"`
	Columns      []string                    `json:"columns"`
	Rows         []DetailRow                 `json:"rows"`
	CoercedCells int                         `json:"coercedCells"`
	GeneratedAt  time.Time                   `json:"generatedAt"`
}

// Branch 组装分店看板
func (s *Service) Branch(ctx context.Context, branch string) (*BranchView, error) {
	table, err := s.Table(ctx, branch)
	if err != nil {
		return nil, err
	}

	view := &BranchView{
		Branch:       branch,
		Meta:         table.Meta,
		Empty:        table.Empty(),
		Groups:       calculator.CalculateGroups(table, s.opts.Groups),
		Trend:        calculator.DailySeries(table, s.opts.TrendMetric),
		TrendMetric:  s.opts.TrendMetric,
		Mix:          calculator.PositiveMix(table, s.opts.MixMetrics),
		Columns:      append([]string{parser.DateColumn}, table.Columns...),
		Rows:         make([]DetailRow, 0, table.Len()),
		CoercedCells: table.CoercedCells(),
		GeneratedAt:  time.Now(),
	}
	for _, r := range table.Rows {
		view.Rows = append(view.Rows, DetailRow{Date: r.DateString(), Values: r.Values})
	}
	return view, nil
}

// LeaderboardQuery 排行查询
type LeaderboardQuery struct {
	Month  string // YYYY-MM，空表示全部月份
	Store  string // 空或 ALL 表示全公司（按門市排名）
	Metric string // 空则使用排行榜第一个指标
	TopN   int
}

// LeaderboardView 排行结果
type LeaderboardView struct {
	Scope   string             `json:"scope"` // company / store
	Month   string             `json:"month"`
	Store   string             `json:"store"`
	Metric  string             `json:"metric"`
	Metrics []string           `json:"metrics"`
	Items   []model.RankItem   `json:"items"`
	Totals  map[string]float64 `json:"totals"`
	Stores  []string           `json:"stores"`
}

// Rank 排行：全公司按門市，单一門市按人員
func (s *Service) Rank(ctx context.Context, q LeaderboardQuery) (*LeaderboardView, error) {
	lb, err := s.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	metric := q.Metric
	if metric == "" && len(lb.Metrics) > 0 {
		metric = lb.Metrics[0]
	}
	topN := q.TopN
	if topN == 0 {
		topN = s.opts.TopN
	}

	view := &LeaderboardView{
		Month:   q.Month,
		Metric:  metric,
		Metrics: lb.Metrics,
		Totals:  make(map[string]float64, len(lb.Metrics)),
		Stores:  calculator.Stores(lb.Facts),
	}

	var entries []model.Entry
	if q.Store == "" || q.Store == AllBranches {
		view.Scope = "company"
		entries = calculator.SumByStore(lb.Facts, q.Month)
	} else {
		view.Scope = "store"
		view.Store = q.Store
		entries = calculator.SumByPerson(lb.Facts, q.Store, q.Month)
	}
	for _, e := range entries {
		for m, v := range e.Metrics {
			view.Totals[m] += v
		}
	}
	view.Items = calculator.Rank(entries, metric, topN)
	return view, nil
}

// Months 排行榜中可选的月份
func (s *Service) Months(ctx context.Context) ([]string, error) {
	lb, err := s.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	return calculator.Months(lb.Facts), nil
}

// CacheStats 缓存统计
type CacheStats struct {
	Tables      cache.Stats `json:"tables"`
	Leaderboard cache.Stats `json:"leaderboard"`
}

// Stats 返回缓存统计
func (s *Service) Stats() CacheStats {
	return CacheStats{
		Tables:      s.tables.Stats(),
		Leaderboard: s.boards.Stats(),
	}
}

// ClearCache 强制重新读取：清空全部缓存
func (s *Service) ClearCache() {
	s.tables.Clear()
	s.boards.Clear()
	log.Printf("已清空缓存")
}
