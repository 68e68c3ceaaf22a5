package sheets

import (
	"context"
	"errors"

	"maniboard/internal/model"
)

// ErrNotFound 试算表或分页不存在
var ErrNotFound = errors.New("spreadsheet or sheet not found")

// Reader 按（试算表, 分页名）读取原始网格，不做任何标题推断
type Reader interface {
	Read(ctx context.Context, spreadsheet, sheet string) (model.Grid, error)
}

// ReaderFunc 函数适配器
type ReaderFunc func(ctx context.Context, spreadsheet, sheet string) (model.Grid, error)

// Read 实现 Reader
func (f ReaderFunc) Read(ctx context.Context, spreadsheet, sheet string) (model.Grid, error) {
	return f(ctx, spreadsheet, sheet)
}
