package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"maniboard/internal/calculator"
	"maniboard/internal/parser"
	"maniboard/internal/report"
)

var normalizeRows int

// normalizeCmd 读取单一分店分页并输出规范化结果
var normalizeCmd = &cobra.Command{
	Use:   "normalize <sheet>",
	Short: "规范化单一分店分页，输出指标汇总与明细",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		reader, err := newReader()
		if err != nil {
			return err
		}
		sheet := args[0]
		grid, err := reader.Read(rootCtx, cfg.Sheets.SpreadsheetID, sheet)
		if err != nil {
			return err
		}

		table, err := parser.NewNormalizer(cfg.Business.DefaultYear, cfg.Business.DefaultMonth).Normalize(grid)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		_, _ = bold.Printf("%s  %d-%02d", sheet, table.Meta.Year, table.Meta.Month)
		if table.Meta.Defaulted {
			_, _ = color.New(color.FgYellow).Print("  (年月使用默认值)")
		}
		fmt.Println()

		if table.Empty() {
			_, _ = color.New(color.FgYellow).Println("⚠️  无资料列")
			return nil
		}
		if n := table.CoercedCells(); n > 0 {
			_, _ = color.New(color.FgRed).Printf("%d 个单元格无法解析，已按 0 计算（标记 *）\n", n)
		}

		opts := renderOptions()
		opts.MaxRows = normalizeRows
		if err := report.WriteGroups(os.Stdout, calculator.CalculateGroups(table, cfg.Dashboard.Groups), opts); err != nil {
			return err
		}
		return report.WriteTable(os.Stdout, table, opts)
	},
}

func init() {
	normalizeCmd.Flags().IntVar(&normalizeRows, "rows", 0, "最多输出的明细列数（0 表示全部）")
}
