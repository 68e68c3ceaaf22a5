package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maniboard/internal/calculator"
	"maniboard/internal/model"
	"maniboard/internal/parser"
)

func sampleTable() *model.NormalizedSheetTable {
	return &model.NormalizedSheetTable{
		Columns: []string{"日", "毛利"},
		Rows: []model.Row{
			{Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), HasDate: true, Values: []float64{5, 1200}, Coerced: []bool{false, false}},
			{Values: []float64{31, 0}, Coerced: []bool{false, true}},
			{Date: time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), HasDate: true, Values: []float64{6, 10}, Coerced: []bool{false, false}},
		},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleTable(), Options{}))

	out := buf.String()
	assert.Contains(t, out, "日期")
	assert.Contains(t, out, "2026-01-05")
	assert.Contains(t, out, "1200")
	assert.Contains(t, out, "0*")
	assert.Contains(t, out, "-")
}

func TestWriteTableMaxRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleTable(), Options{MaxRows: 1}))
	assert.NotContains(t, buf.String(), "2026-01-06")
}

func TestWriteGroups(t *testing.T) {
	groups := []calculator.IndicatorGroup{{
		Name: "遠傳指標",
		Indicators: []calculator.Indicator{
			{Name: "遠傳升續率", Value: 0.5, Format: "ratio", Found: true},
			{Name: "毛利", Value: 1234567, Format: "money", Found: true},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteGroups(&buf, groups, Options{}))
	assert.Contains(t, buf.String(), "50.00%")
	assert.Contains(t, buf.String(), "1,234,567")
}

func TestWriteRanking(t *testing.T) {
	var buf bytes.Buffer
	items := []model.RankItem{{Label: "東門店", Value: 4500}, {Label: "文賢店", Value: -20}}
	require.NoError(t, WriteRanking(&buf, "毛利", items, Options{UseColors: false}))

	out := buf.String()
	assert.Contains(t, out, "東門店")
	assert.Contains(t, out, "4,500")
	assert.Contains(t, out, "-20")
}

func TestWriteSheets(t *testing.T) {
	var buf bytes.Buffer
	results := []parser.SheetRecognitionResult{
		{SheetName: "東門店", SheetType: parser.SheetTypeBranch, Confidence: 0.9, DataYear: 2026, DataMonth: 2},
		{SheetName: "備註", SheetType: parser.SheetTypeUnknown},
	}
	require.NoError(t, WriteSheets(&buf, results, Options{}))

	out := buf.String()
	assert.Contains(t, out, "branch")
	assert.Contains(t, out, "2026-02")
	assert.Contains(t, out, "unknown")
}
