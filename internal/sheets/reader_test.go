package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"maniboard/internal/model"
)

func writeWorkbook(t *testing.T, dir, name string, sheets map[string][][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	for sheet, rows := range sheets {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("NewSheet(%s): %v", sheet, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			r := row
			require.NoError(t, f.SetSheetRow(sheet, cell, &r))
		}
	}
	require.NoError(t, f.SaveAs(filepath.Join(dir, name)))
}

func TestXLSXReader_Read(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "mani.xlsx", map[string][][]interface{}{
		"東門店": {
			{"日報表"},
			{2026, 3},
			{"日", "毛利"},
			{1, 1234.5},
		},
	})

	r := NewXLSXReader(dir)
	grid, err := r.Read(context.Background(), "mani", "東門店")
	require.NoError(t, err)
	require.Len(t, grid, 4)
	assert.Equal(t, "2026", grid.Cell(1, 0))
	assert.Equal(t, "毛利", grid.Cell(2, 1))
	assert.Equal(t, "1234.5", grid.Cell(3, 1))

	same, err := r.Read(context.Background(), "mani.xlsx", "東門店")
	require.NoError(t, err)
	assert.Equal(t, grid, same)

	names, err := r.SheetNames("mani")
	require.NoError(t, err)
	assert.Contains(t, names, "東門店")
}

func TestXLSXReader_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "mani.xlsx", map[string][][]interface{}{"東門店": {{"x"}}})
	r := NewXLSXReader(dir)

	_, err := r.Read(context.Background(), "mani", "不存在店")
	assert.True(t, errors.Is(err, ErrNotFound), "%v", err)

	_, err = r.Read(context.Background(), "missing", "東門店")
	assert.True(t, errors.Is(err, ErrNotFound), "%v", err)

	_, err = r.Read(context.Background(), "../mani", "東門店")
	assert.True(t, errors.Is(err, ErrNotFound), "%v", err)
}

func TestGSheetsReader_Read(t *testing.T) {
	var gotPath, gotFormat, gotGID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		gotFormat = req.URL.Query().Get("format")
		gotGID = req.URL.Query().Get("gid")
		if gotGID == "999" {
			http.Error(w, "no such sheet", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("\"日報表\"\n\"2026\",\"3\"\n\"日\",\"毛利\",\"\"\n\"1\",\"1,000\"\n"))
	}))
	defer srv.Close()

	r := NewGSheetsReader(srv.URL, 0, map[string]string{"東門店": "42", "已刪除": "999"})
	grid, err := r.Read(context.Background(), "abc123", "東門店")
	require.NoError(t, err)
	assert.Equal(t, "/abc123/export", gotPath)
	assert.Equal(t, "csv", gotFormat)
	assert.Equal(t, "42", gotGID)
	require.Len(t, grid, 4)
	assert.Equal(t, []string{"日報表"}, grid[0])
	assert.Equal(t, "1,000", grid.Cell(3, 1))

	_, err = r.Read(context.Background(), "abc123", "已刪除")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGSheetsReader_UnknownSheetSkipsRequest(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requests++
		_, _ = w.Write([]byte("a\n"))
	}))
	defer srv.Close()

	_, err := NewGSheetsReader(srv.URL, 0, nil).Read(context.Background(), "abc123", "不存在")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, requests)
}

func TestGSheetsReader_KeepsTextAboveNumbers(t *testing.T) {
	body := strings.Join([]string{
		"日報表,,",
		"2026,3,",
		"日,毛利,達成率",
		"1,\"1,200\",85%",
		"2,800,90%",
	}, "\n")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	grid, err := NewGSheetsReader(srv.URL, 0, map[string]string{"東門店": "7"}).
		Read(context.Background(), "abc123", "東門店")
	require.NoError(t, err)
	assert.Equal(t, "日報表", grid.Cell(0, 0))
	assert.Equal(t, "毛利", grid.Cell(2, 1))
	assert.Equal(t, "達成率", grid.Cell(2, 2))
	assert.Equal(t, "1,200", grid.Cell(3, 1))
	assert.Equal(t, "85%", grid.Cell(3, 2))
}

func TestGSheetsReader_ServerErrorIsNotNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewGSheetsReader(srv.URL, 0, map[string]string{"ALL": "0"}).Read(context.Background(), "abc", "ALL")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, strings.Contains(err.Error(), "500"))
}

type memRecorder struct {
	logs []model.FetchLog
}

func (m *memRecorder) InsertFetchLog(l model.FetchLog) (int64, error) {
	m.logs = append(m.logs, l)
	return int64(len(m.logs)), nil
}

func TestLoggingReader_RecordsEveryRead(t *testing.T) {
	inner := ReaderFunc(func(ctx context.Context, spreadsheet, sheet string) (model.Grid, error) {
		if sheet == "missing" {
			return nil, ErrNotFound
		}
		if sheet == "broken" {
			return nil, errors.New("network down")
		}
		return model.Grid{{"a"}, {"b", "c", "d"}}, nil
	})
	rec := &memRecorder{}
	r := NewLoggingReader(inner, rec)

	grid, err := r.Read(context.Background(), "book", "ok")
	require.NoError(t, err)
	assert.Len(t, grid, 2)

	_, err = r.Read(context.Background(), "book", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Read(context.Background(), "book", "broken")
	assert.Error(t, err)

	require.Len(t, rec.logs, 3)
	assert.Equal(t, model.FetchStatusOK, rec.logs[0].Status)
	assert.Equal(t, 2, rec.logs[0].TotalRows)
	assert.Equal(t, 3, rec.logs[0].TotalColumns)
	assert.NotEmpty(t, rec.logs[0].RequestID)
	assert.Equal(t, model.FetchStatusNotFound, rec.logs[1].Status)
	assert.Equal(t, model.FetchStatusError, rec.logs[2].Status)
	assert.Equal(t, "network down", rec.logs[2].ErrorMessage)
}

func TestParseCSV_Ragged(t *testing.T) {
	grid, err := ParseCSV(strings.NewReader("a\nb,c,d\n\"e \"\"q\"\"\",f\n"))
	require.NoError(t, err)
	assert.Equal(t, model.Grid{{"a"}, {"b", "c", "d"}, {"e \"q\"", "f"}}, grid)
}
