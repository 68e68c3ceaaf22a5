package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"maniboard/internal/model"
)

// DefaultGSheetsBaseURL Google 试算表匯出端点
const DefaultGSheetsBaseURL = "https://docs.google.com/spreadsheets/d"

// GSheetsReader 透过 CSV 匯出读取 Google 试算表分页
// 匯出端点按 gid 定位分页，所有单元格以原始文字返回，不做栏位型别推断
// 失败不重试，由调用方决定
type GSheetsReader struct {
	baseURL string
	client  *http.Client
	gids    map[string]string // 分页名 -> gid
}

// NewGSheetsReader 创建读取器；baseURL 为空时使用官方端点
func NewGSheetsReader(baseURL string, timeout time.Duration, gids map[string]string) *GSheetsReader {
	if baseURL == "" {
		baseURL = DefaultGSheetsBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	m := make(map[string]string, len(gids))
	for name, gid := range gids {
		m[strings.TrimSpace(name)] = strings.TrimSpace(gid)
	}
	return &GSheetsReader{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		gids:    m,
	}
}

// ExportURL 分页的 CSV 匯出地址；分页未配置 gid 时返回 false
func (r *GSheetsReader) ExportURL(spreadsheet, sheet string) (string, bool) {
	gid, ok := r.gids[strings.TrimSpace(sheet)]
	if !ok || gid == "" {
		return "", false
	}
	q := url.Values{}
	q.Set("format", "csv")
	q.Set("gid", gid)
	return fmt.Sprintf("%s/%s/export?%s", r.baseURL, url.PathEscape(spreadsheet), q.Encode()), true
}

// Read 下载并解析 CSV
func (r *GSheetsReader) Read(ctx context.Context, spreadsheet, sheet string) (model.Grid, error) {
	u, ok := r.ExportURL(spreadsheet, sheet)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s (未配置 gid)", ErrNotFound, spreadsheet, sheet)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, spreadsheet, sheet)
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch sheet %s/%s: unexpected status %d", spreadsheet, sheet, resp.StatusCode)
	}

	return ParseCSV(resp.Body)
}

// ParseCSV 将 CSV 解析为网格，允许每列栏数不同
func ParseCSV(rd io.Reader) (model.Grid, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return model.Grid(records), nil
}
