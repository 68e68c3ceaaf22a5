package parser

// 分页模板的固定坐标（0 起始）。上游试算表模板变动时只改这里。
const (
	MetaRow      = 1  // 第 2 列：A2 年份 / B2 月份
	MetaYearCol  = 0  // A 栏
	MetaMonthCol = 1  // B 栏
	HeaderRow    = 2  // 第 3 列：标题列
	DataStartRow = 14 // 第 15 列起：数据区

	// DateColumn 合成日期列的名称
	DateColumn = "日期"
)

// 元信息缺失时的默认年月
const (
	DefaultYear  = 2026
	DefaultMonth = 1
)

// RowKind 行在模板中的角色
type RowKind string

const (
	RowKindPreamble RowKind = "preamble"
	RowKindMeta     RowKind = "meta"
	RowKindHeader   RowKind = "header"
	RowKindData     RowKind = "data"
)

// ClassifyRow 返回给定行下标在模板中的角色
func ClassifyRow(row int) RowKind {
	switch {
	case row == MetaRow:
		return RowKindMeta
	case row == HeaderRow:
		return RowKindHeader
	case row >= DataStartRow:
		return RowKindData
	default:
		return RowKindPreamble
	}
}
