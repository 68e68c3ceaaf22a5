package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"maniboard/internal/config"
	"maniboard/internal/report"
	"maniboard/internal/server"
	"maniboard/internal/sheets"
)

// rootCtx 所有子命令共用的 context
var rootCtx = context.Background()

// cfg 套用命令行参数之后的配置
var cfg *config.AppConfig

// 命令行参数，覆盖 config.toml
var flags struct {
	configPath  string
	source      string
	dir         string
	spreadsheet string
	noColor     bool
}

var rootCmd = &cobra.Command{
	Use:   "sheetdump",
	Short: "在命令行查看分店日报与排行榜",
	Long: `以戰情室相同的方式读取分店日报并输出结果。

示例:
  # 规范化本地工作簿中的一个分店分页
  sheetdump normalize 東門店 --dir ./sheets --spreadsheet book

  # 一月全公司排行
  sheetdump leaderboard --month 2026-01 --metric 毛利

  # 单一門市内的人员排行
  sheetdump leaderboard --store 東門店 --top 5`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(sheetsCmd)

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config.toml 路径（默认与可执行文件同目录）")
	rootCmd.PersistentFlags().StringVar(&flags.source, "source", "", "试算表来源: xlsx 或 gsheets")
	rootCmd.PersistentFlags().StringVar(&flags.dir, "dir", "", "xlsx 来源的工作簿目录")
	rootCmd.PersistentFlags().StringVar(&flags.spreadsheet, "spreadsheet", "", "试算表 ID（xlsx 来源为工作簿名）")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "关闭彩色输出")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	path := flags.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	loaded, _, err := config.LoadConfigFrom(path)
	if err != nil {
		return fmt.Errorf("加载配置 %s 失败: %w", path, err)
	}

	if flags.source != "" {
		loaded.Sheets.Source = flags.source
	}
	if flags.dir != "" {
		loaded.Sheets.Dir = flags.dir
	}
	if flags.spreadsheet != "" {
		loaded.Sheets.SpreadsheetID = flags.spreadsheet
	}
	if flags.noColor {
		color.NoColor = true
	}
	cfg = loaded
	return nil
}

func newReader() (sheets.Reader, error) {
	return server.NewReader(cfg)
}

func renderOptions() report.Options {
	return report.Options{UseColors: !color.NoColor}
}
