package parser

import "strings"

// Column 保留下来的列：原始列下标 + 规范化后的标题
type Column struct {
	Index int
	Name  string
}

// IsRejectedHeader 判断标题是否应整列丢弃
// 空字符串、"nan"（不分大小写）、以 "Unnamed" 开头（区分大小写）
func IsRejectedHeader(header string) bool {
	h := strings.TrimSpace(header)
	if h == "" {
		return true
	}
	if strings.EqualFold(h, "nan") {
		return true
	}
	return strings.HasPrefix(h, "Unnamed")
}

// ReconcileColumns 过滤无效标题并去重，保留首次出现的列
func ReconcileColumns(headers []string) []Column {
	seen := make(map[string]bool, len(headers))
	out := make([]Column, 0, len(headers))
	for i, raw := range headers {
		if IsRejectedHeader(raw) {
			continue
		}
		name := strings.TrimSpace(raw)
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, Column{Index: i, Name: name})
	}
	return out
}

// ReconcileHeaders 同 ReconcileColumns，只返回标题
func ReconcileHeaders(headers []string) []string {
	cols := ReconcileColumns(headers)
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
