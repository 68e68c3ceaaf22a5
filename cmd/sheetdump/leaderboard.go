package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"maniboard/internal/report"
	"maniboard/internal/server"
	"maniboard/internal/service/dashboard"
)

var leaderboardQuery dashboard.LeaderboardQuery

// leaderboardCmd 按单一指标为門市（或門市内人员）排名
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "按排行榜指标为門市或門市内人员排名",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		reader, err := newReader()
		if err != nil {
			return err
		}
		svc := server.NewDashboardService(cfg, reader)

		view, err := svc.Rank(rootCtx, leaderboardQuery)
		if err != nil {
			return err
		}

		scope := "全公司"
		if view.Scope == "store" {
			scope = view.Store
		}
		month := view.Month
		if month == "" {
			month = "全部月份"
		}
		_, _ = color.New(color.Bold).Printf("%s · %s · %s\n", scope, month, view.Metric)

		if len(view.Items) == 0 {
			_, _ = color.New(color.FgYellow).Println("⚠️  无符合条件的资料")
			return nil
		}
		if err := report.WriteRanking(os.Stdout, view.Metric, view.Items, renderOptions()); err != nil {
			return err
		}
		fmt.Printf("可选指标: %s\n", strings.Join(view.Metrics, ", "))
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().StringVar(&leaderboardQuery.Month, "month", "", "月份筛选 (YYYY-MM)")
	leaderboardCmd.Flags().StringVar(&leaderboardQuery.Store, "store", "", "在指定門市内为人员排名（留空或 ALL 表示門市排名）")
	leaderboardCmd.Flags().StringVar(&leaderboardQuery.Metric, "metric", "", "排名指标（默认第一个指标）")
	leaderboardCmd.Flags().IntVar(&leaderboardQuery.TopN, "top", 0, "显示笔数（0 表示使用配置默认值）")
}
