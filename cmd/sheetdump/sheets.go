package main

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"

	"maniboard/internal/parser"
	"maniboard/internal/report"
	"maniboard/internal/sheets"
)

// sheetsCmd 列出本地工作簿的分页并识别版面类型
var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "列出工作簿分页并识别分店日报 / 排行榜版面（仅限 xlsx 来源）",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		reader, err := newReader()
		if err != nil {
			return err
		}
		xr, ok := reader.(*sheets.XLSXReader)
		if !ok {
			return errors.New("列出分页需要 xlsx 来源")
		}
		names, err := xr.SheetNames(cfg.Sheets.SpreadsheetID)
		if err != nil {
			return err
		}

		recognizer := parser.NewSheetRecognizer(cfg.Sheets.Leaderboard.Columns)
		results := make([]parser.SheetRecognitionResult, 0, len(names))
		for _, name := range names {
			grid, err := xr.Read(rootCtx, cfg.Sheets.SpreadsheetID, name)
			if err != nil {
				log.Printf("跳过分页 %s: %v", name, err)
				continue
			}
			results = append(results, recognizer.Recognize(name, grid))
		}
		return report.WriteSheets(os.Stdout, results, renderOptions())
	},
}
