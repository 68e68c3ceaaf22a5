// Package report 以终端表格输出规范化明细、指标与排行
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"maniboard/internal/calculator"
	"maniboard/internal/model"
	"maniboard/internal/parser"
	"maniboard/internal/util"
)

// Options 表格输出选项
type Options struct {
	UseColors bool
	MaxRows   int // 0 表示全部
}

func (o Options) painters() (red, green, faint func(...any) string) {
	if !o.UseColors {
		return fmt.Sprint, fmt.Sprint, fmt.Sprint
	}
	return color.New(color.FgRed).SprintFunc(),
		color.New(color.FgGreen).SprintFunc(),
		color.New(color.FgHiBlack).SprintFunc()
}

// WriteTable 输出分店明细；无法解析而置 0 的单元格以 * 标记
func WriteTable(w io.Writer, table *model.NormalizedSheetTable, opts Options) error {
	t := tablewriter.NewWriter(w)
	defer func() { _ = t.Close() }()

	headers := append([]string{parser.DateColumn}, table.Columns...)
	t.Header(headers)
	t.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	red, _, faint := opts.painters()
	rows := table.Rows
	if opts.MaxRows > 0 && len(rows) > opts.MaxRows {
		rows = rows[:opts.MaxRows]
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		date := r.DateString()
		if date == "" {
			date = faint("-")
		}
		row := []string{date}
		for i, v := range r.Values {
			cell := strconv.FormatFloat(v, 'f', -1, 64)
			if i < len(r.Coerced) && r.Coerced[i] {
				cell = red(cell + "*")
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	if err := t.Bulk(data); err != nil {
		return err
	}
	return t.Render()
}

// WriteGroups 输出指标分组，负值标红
func WriteGroups(w io.Writer, groups []calculator.IndicatorGroup, opts Options) error {
	t := tablewriter.NewWriter(w)
	defer func() { _ = t.Close() }()

	t.Header([]string{"分组", "指标", "数值"})
	t.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	red, _, faint := opts.painters()
	var data [][]string
	for _, g := range groups {
		for _, ind := range g.Indicators {
			value := util.FormatByKind(ind.Format, ind.Value)
			switch {
			case !ind.Found:
				value = faint(value)
			case ind.Value < 0:
				value = red(value)
			}
			data = append(data, []string{g.Name, ind.Name, value})
		}
	}

	if err := t.Bulk(data); err != nil {
		return err
	}
	return t.Render()
}

// WriteRanking 输出排行，第一名标绿
func WriteRanking(w io.Writer, metric string, items []model.RankItem, opts Options) error {
	t := tablewriter.NewWriter(w)
	defer func() { _ = t.Close() }()

	t.Header([]string{"名次", "名称", metric})
	t.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	red, green, _ := opts.painters()
	data := make([][]string, 0, len(items))
	for i, it := range items {
		value := util.FormatAmount(it.Value)
		switch {
		case i == 0 && it.Value > 0:
			value = green(value)
		case it.Value < 0:
			value = red(value)
		}
		data = append(data, []string{strconv.Itoa(i + 1), it.Label, value})
	}

	if err := t.Bulk(data); err != nil {
		return err
	}
	return t.Render()
}

// WriteSheets 输出工作簿各分页的识别结果
func WriteSheets(w io.Writer, results []parser.SheetRecognitionResult, opts Options) error {
	t := tablewriter.NewWriter(w)
	defer func() { _ = t.Close() }()

	t.Header([]string{"分页", "类型", "置信度", "期间"})

	_, green, faint := opts.painters()
	data := make([][]string, 0, len(results))
	for _, r := range results {
		kind := string(r.SheetType)
		if r.SheetType == parser.SheetTypeUnknown {
			kind = faint(kind)
		} else {
			kind = green(kind)
		}
		period := ""
		if r.DataYear > 0 {
			period = fmt.Sprintf("%d-%02d", r.DataYear, r.DataMonth)
		}
		data = append(data, []string{r.SheetName, kind, fmt.Sprintf("%.2f", r.Confidence), period})
	}

	if err := t.Bulk(data); err != nil {
		return err
	}
	return t.Render()
}
