package parser

import (
	"errors"
	"math"
	"time"

	"maniboard/internal/model"
)

// ErrMalformedSheet 网格结构不可用（一列都没有）
var ErrMalformedSheet = errors.New("malformed sheet: grid has no rows")

// Normalizer 分页规范化器：原始网格 -> 带日期列、全数值指标的表
type Normalizer struct {
	defaultYear  int
	defaultMonth int
}

// NewNormalizer 创建规范化器，传入 A2/B2 缺失时使用的默认年月
func NewNormalizer(defaultYear, defaultMonth int) *Normalizer {
	if defaultYear <= 0 || defaultMonth < 1 || defaultMonth > 12 {
		defaultYear, defaultMonth = DefaultYear, DefaultMonth
	}
	return &Normalizer{
		defaultYear:  defaultYear,
		defaultMonth: defaultMonth,
	}
}

// Normalize 规范化单个分页
// 步骤顺序固定：元信息 -> 标题 -> 截取数据区 -> 过滤非数字日 -> 合成日期 -> 数值转换
func (n *Normalizer) Normalize(grid model.Grid) (*model.NormalizedSheetTable, error) {
	if len(grid) == 0 {
		return nil, ErrMalformedSheet
	}

	meta := n.ExtractMetadata(grid)
	table := &model.NormalizedSheetTable{
		Meta:    meta,
		Columns: []string{},
		Rows:    []model.Row{},
	}

	var header []string
	if len(grid) > HeaderRow {
		header = grid[HeaderRow]
	}
	cols := ReconcileColumns(header)
	if len(cols) == 0 {
		return table, nil
	}

	// 与日期列同名的列会被合成日期覆盖
	anchor := cols[0]
	metrics := make([]Column, 0, len(cols))
	for _, c := range cols {
		if c.Name == DateColumn {
			continue
		}
		metrics = append(metrics, c)
		table.Columns = append(table.Columns, c.Name)
	}

	if len(grid) <= DataStartRow {
		return table, nil
	}

	for ri := DataStartRow; ri < len(grid); ri++ {
		day, ok := ParseNumber(grid.Cell(ri, anchor.Index))
		if !ok {
			continue
		}

		row := model.Row{
			Values:  make([]float64, len(metrics)),
			Coerced: make([]bool, len(metrics)),
		}
		row.Date, row.HasDate = SynthesizeDate(meta.Year, meta.Month, day)
		for ci, c := range metrics {
			row.Values[ci], row.Coerced[ci] = CoerceFloat(grid.Cell(ri, c.Index))
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// ExtractMetadata 读取 A2/B2 的年、月
// 任一缺失或非数字（或月份不在 1-12）时，年月一起回退到默认值
func (n *Normalizer) ExtractMetadata(grid model.Grid) model.SheetMetadata {
	fallback := model.SheetMetadata{Year: n.defaultYear, Month: n.defaultMonth, Defaulted: true}

	y, okY := ParseNumber(grid.Cell(MetaRow, MetaYearCol))
	m, okM := ParseNumber(grid.Cell(MetaRow, MetaMonthCol))
	if !okY || !okM {
		return fallback
	}

	year := int(math.Trunc(y))
	month := int(math.Trunc(m))
	if year <= 0 || month < 1 || month > 12 {
		return fallback
	}
	return model.SheetMetadata{Year: year, Month: month}
}

// SynthesizeDate 由年、月与日号合成日期；日历上不存在的组合返回 ok=false
func SynthesizeDate(year, month int, day float64) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := int(math.Trunc(day))
	t := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}
