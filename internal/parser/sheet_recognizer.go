package parser

import (
	"maniboard/internal/model"
)

// branchKeyFields 分店日报表头常见栏位
var branchKeyFields = []string{
	"毛利",
	"配件營收",
	"保險營收",
	"門號",
	"來客數",
	"庫存手機",
}

// SheetRecognizer 分页类型识别器
type SheetRecognizer struct {
	leaderboard LeaderboardColumns
}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer(leaderboard LeaderboardColumns) *SheetRecognizer {
	return &SheetRecognizer{leaderboard: leaderboard}
}

// Recognize 识别分页类型
func (r *SheetRecognizer) Recognize(sheetName string, grid model.Grid) SheetRecognitionResult {
	if result := r.recognizeLeaderboard(sheetName, grid); result.Confidence >= 0.5 {
		return result
	}

	if result := r.recognizeBranch(sheetName, grid); result.Confidence >= 0.5 {
		return result
	}

	// 无法识别
	return SheetRecognitionResult{
		SheetName:  sheetName,
		SheetType:  SheetTypeUnknown,
		Confidence: 0,
	}
}

// recognizeLeaderboard 首行需同时有月份、門市、人員
func (r *SheetRecognizer) recognizeLeaderboard(sheetName string, grid model.Grid) SheetRecognitionResult {
	result := SheetRecognitionResult{SheetName: sheetName, SheetType: SheetTypeLeaderboard}
	if len(grid) == 0 {
		return result
	}

	header := grid[0]
	matched := 0
	for _, name := range []string{r.leaderboard.Month, r.leaderboard.Store, r.leaderboard.Person} {
		if findColumn(header, name) >= 0 {
			matched++
		}
	}
	result.Confidence = float64(matched) / 3
	if matched < 3 {
		result.Confidence /= 2
	}
	return result
}

// recognizeBranch 第 3 行为表头，第 2 行为年月
func (r *SheetRecognizer) recognizeBranch(sheetName string, grid model.Grid) SheetRecognitionResult {
	result := SheetRecognitionResult{SheetName: sheetName, SheetType: SheetTypeBranch}
	if len(grid) <= HeaderRow {
		return result
	}

	names := make(map[string]bool)
	for _, c := range ReconcileColumns(grid[HeaderRow]) {
		names[NormalizeColumnName(c.Name)] = true
	}

	matched := 0
	for _, field := range branchKeyFields {
		if names[field] {
			matched++
		}
	}
	confidence := float64(matched) / float64(len(branchKeyFields))

	year, yearOK := ParseNumber(grid.Cell(MetaRow, MetaYearCol))
	month, monthOK := ParseNumber(grid.Cell(MetaRow, MetaMonthCol))
	if yearOK && monthOK && month >= 1 && month <= 12 {
		confidence += 0.3
		result.DataYear = int(year)
		result.DataMonth = int(month)
	} else if y, m, found := ExtractYearMonth(sheetName); found {
		result.DataYear = y
		result.DataMonth = m
	}

	if confidence > 1 {
		confidence = 1
	}
	result.Confidence = confidence
	return result
}
