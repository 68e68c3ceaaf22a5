package sheets

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"maniboard/internal/model"
)

// FetchRecorder 读取记录的落地方
type FetchRecorder interface {
	InsertFetchLog(l model.FetchLog) (int64, error)
}

// LoggingReader 为每次真实读取写一条记录；记录失败不影响读取结果
type LoggingReader struct {
	next     Reader
	recorder FetchRecorder
}

// NewLoggingReader 包装读取器；recorder 为 nil 时只打日志
func NewLoggingReader(next Reader, recorder FetchRecorder) *LoggingReader {
	return &LoggingReader{next: next, recorder: recorder}
}

// Read 实现 Reader
func (r *LoggingReader) Read(ctx context.Context, spreadsheet, sheet string) (model.Grid, error) {
	start := time.Now()
	grid, err := r.next.Read(ctx, spreadsheet, sheet)

	entry := model.FetchLog{
		RequestID:   uuid.New().String(),
		Spreadsheet: spreadsheet,
		Sheet:       sheet,
		Status:      model.FetchStatusOK,
		DurationMs:  time.Since(start).Milliseconds(),
		CreatedAt:   start,
	}
	switch {
	case errors.Is(err, ErrNotFound):
		entry.Status = model.FetchStatusNotFound
		entry.ErrorMessage = err.Error()
	case err != nil:
		entry.Status = model.FetchStatusError
		entry.ErrorMessage = err.Error()
	default:
		entry.TotalRows = len(grid)
		entry.TotalColumns = grid.Width()
	}

	if err != nil {
		log.Printf("读取分页失败 %s/%s: %v", spreadsheet, sheet, err)
	} else {
		log.Printf("读取分页 %s/%s: %d 列 × %d 栏, 耗时 %dms", spreadsheet, sheet, entry.TotalRows, entry.TotalColumns, entry.DurationMs)
	}

	if r.recorder != nil {
		if _, rerr := r.recorder.InsertFetchLog(entry); rerr != nil {
			log.Printf("写入读取记录失败: %v", rerr)
		}
	}
	return grid, err
}
