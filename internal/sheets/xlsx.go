package sheets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"maniboard/internal/model"
)

// XLSXReader 从本地目录读取 .xlsx 工作簿（试算表 ID 即文件名）
type XLSXReader struct {
	dir string
}

// NewXLSXReader 创建本地工作簿读取器
func NewXLSXReader(dir string) *XLSXReader {
	return &XLSXReader{dir: dir}
}

// Path 试算表 ID 对应的文件路径
func (r *XLSXReader) Path(spreadsheet string) (string, error) {
	name := strings.TrimSpace(spreadsheet)
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: invalid spreadsheet id %q", ErrNotFound, spreadsheet)
	}
	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		name += ".xlsx"
	}
	return filepath.Join(r.dir, name), nil
}

// Read 读取分页的全部单元格（原始值，不套用数字格式）
func (r *XLSXReader) Read(ctx context.Context, spreadsheet, sheet string) (model.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := r.Path(spreadsheet)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, spreadsheet)
		}
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, spreadsheet, sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return model.Grid(rows), nil
}

// SheetNames 列出工作簿中的分页
func (r *XLSXReader) SheetNames(spreadsheet string) ([]string, error) {
	path, err := r.Path(spreadsheet)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, spreadsheet)
		}
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}
