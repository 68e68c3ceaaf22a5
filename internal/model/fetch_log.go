package model

import "time"

// FetchStatus 读取结果
type FetchStatus string

const (
	FetchStatusOK       FetchStatus = "ok"
	FetchStatusNotFound FetchStatus = "not_found"
	FetchStatusError    FetchStatus = "error"
)

// FetchLog 一次真实的分页读取记录（只记原始网格的形状，不存数据）
type FetchLog struct {
	ID           int64       `json:"id"`
	RequestID    string      `json:"requestId"`
	Spreadsheet  string      `json:"spreadsheet"`
	Sheet        string      `json:"sheet"`
	Status       FetchStatus `json:"status"`
	TotalRows    int         `json:"totalRows"`
	TotalColumns int         `json:"totalColumns"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
	DurationMs   int64       `json:"durationMs"`
	CreatedAt    time.Time   `json:"createdAt"`
}
