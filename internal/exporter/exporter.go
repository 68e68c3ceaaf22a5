package exporter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"maniboard/internal/calculator"
	"maniboard/internal/model"
	"maniboard/internal/parser"
)

// SummarySheet 指标汇总分页名
const SummarySheet = "指标汇总"

// maxSheetNameLen Excel 分页名长度上限
const maxSheetNameLen = 31

// ExportTable 导出分店明细：日期 + 各栏位，日期为空时留空
func ExportTable(table *model.NormalizedSheetTable, branch string) (*excelize.File, error) {
	if table == nil {
		return nil, fmt.Errorf("明细表为空")
	}

	f := excelize.NewFile()
	sheetName := SheetName(branch)
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		_ = f.Close()
		return nil, err
	}

	headers := make([]interface{}, 0, len(table.Columns)+1)
	headers = append(headers, parser.DateColumn)
	for _, c := range table.Columns {
		headers = append(headers, c)
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("写入表头失败: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetRowStyle(sheetName, 1, 1, headerStyle)

	for i, r := range table.Rows {
		row := make([]interface{}, 0, len(r.Values)+1)
		row = append(row, r.DateString())
		for _, v := range r.Values {
			row = append(row, v)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("写入第 %d 行失败: %w", i+1, err)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 14)
	if n := len(table.Columns); n > 0 {
		last, _ := excelize.ColumnNumberToName(n + 1)
		_ = f.SetColWidth(sheetName, "B", last, 12)
	}
	_ = f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return f, nil
}

// AddSummarySheet 追加指标汇总分页
func AddSummarySheet(f *excelize.File, groups []calculator.IndicatorGroup) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}

	data := [][]interface{}{{"分组", "指标", "数值"}}
	for _, g := range groups {
		for _, ind := range g.Indicators {
			data = append(data, []interface{}{g.Name, ind.Name, ind.Value})
		}
	}
	for i, row := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(SummarySheet, "A", "B", 20)
	_ = f.SetColWidth(SummarySheet, "C", "C", 15)
	return nil
}

// SheetName 将分店名转为合法的 Excel 分页名
func SheetName(branch string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(branch))
	name = strings.Trim(name, "'")
	if name == "" {
		return "明细"
	}
	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = string(runes[:maxSheetNameLen])
	}
	return name
}

// Filename 下载文件名
func Filename(branch string, meta model.SheetMetadata) string {
	return fmt.Sprintf("%s-%d-%02d.xlsx", SheetName(branch), meta.Year, meta.Month)
}
