package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	yearMonthRe = regexp.MustCompile(`(\d{4})年0?(\d{1,2})月`)
	spacesRe    = regexp.MustCompile(`\s+`)
)

// ExtractYearMonth 从字符串中提取年月信息
// 支持格式: "2026年1月" / "2026年01月業績" / "業績;2026年1月"
func ExtractYearMonth(text string) (year, month int, found bool) {
	matches := yearMonthRe.FindStringSubmatch(text)
	if len(matches) >= 3 {
		year, _ = strconv.Atoi(matches[1])
		month, _ = strconv.Atoi(matches[2])
		return year, month, true
	}
	return 0, 0, false
}

// IsBlank 判断单元格是否为空（含 pandas 风格的 "nan" / "None" 占位）
func IsBlank(v string) bool {
	s := strings.TrimSpace(v)
	return s == "" || s == "nan" || s == "None"
}

// ParseNumber 将单元格解析为数字
// 去除首尾空白与千分位逗号；NaN / Inf 视为非数字
func ParseNumber(v string) (float64, bool) {
	s := strings.TrimSpace(v)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CoerceFloat 数字转换，失败时返回 0
// coerced 仅在非空内容被置 0 时为 true，空白单元格不算
func CoerceFloat(v string) (value float64, coerced bool) {
	f, ok := ParseNumber(v)
	if ok {
		return f, false
	}
	return 0, strings.TrimSpace(v) != ""
}

// NormalizeColumnName 规范化列名，去除所有空白，用于宽松比对
func NormalizeColumnName(name string) string {
	return spacesRe.ReplaceAllString(strings.TrimSpace(name), "")
}
