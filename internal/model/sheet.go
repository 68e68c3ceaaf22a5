package model

import "time"

// Grid 原始单元格网格（行 × 列，0 起始，允许参差行，空白/合并单元格为 ""）
type Grid [][]string

// Cell 安全取值，越界返回 ""
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Width 最宽一行的列数
func (g Grid) Width() int {
	w := 0
	for _, r := range g {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// SheetMetadata 分页元信息（A2 年份 / B2 月份）
type SheetMetadata struct {
	Year      int  `json:"year"`
	Month     int  `json:"month"`
	Defaulted bool `json:"defaulted"` // 是否使用了默认年月
}

// Row 规范化后的一行
type Row struct {
	Date    time.Time `json:"-"`
	HasDate bool      `json:"-"`
	Values  []float64 `json:"values"`
	Coerced []bool    `json:"-"` // 非空但无法解析、被置为 0 的单元格
}

// DateString 日期文本，空日期返回 ""
func (r Row) DateString() string {
	if !r.HasDate {
		return ""
	}
	return r.Date.Format("2006-01-02")
}

// NormalizedSheetTable 单个分页规范化结果，构造后只读
type NormalizedSheetTable struct {
	Meta    SheetMetadata `json:"meta"`
	Columns []string      `json:"columns"`
	Rows    []Row         `json:"rows"`
}

// Len 数据行数
func (t *NormalizedSheetTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty 是否无数据
func (t *NormalizedSheetTable) Empty() bool {
	return t.Len() == 0
}

// ColumnIndex 列名对应的下标，不存在返回 -1
func (t *NormalizedSheetTable) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// CoercedCells 统计被静默置 0 的单元格数量
func (t *NormalizedSheetTable) CoercedCells() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, r := range t.Rows {
		for _, c := range r.Coerced {
			if c {
				n++
			}
		}
	}
	return n
}
