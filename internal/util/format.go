package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatPercent 格式化比率（0.125 -> 12.50%）
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value*100)
}

// FormatAmount 千分位取整（1234567.6 -> 1,234,568）
func FormatAmount(value float64) string {
	n := int64(math.Round(value))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatByKind 按指标格式输出：money/count 取整千分位，ratio 百分比
func FormatByKind(kind string, value float64) string {
	if kind == "ratio" {
		return FormatPercent(value)
	}
	return FormatAmount(value)
}
