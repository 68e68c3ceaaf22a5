package store

import (
	"fmt"
	"time"

	"maniboard/internal/model"
)

// InsertFetchLog 写入一次读取记录，返回 id
func (s *Store) InsertFetchLog(l model.FetchLog) (int64, error) {
	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := s.db.Exec(`
		INSERT INTO fetch_logs (
			request_id, spreadsheet, sheet, status,
			total_rows, total_columns,
			error_message, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		l.RequestID, l.Spreadsheet, l.Sheet, string(l.Status),
		l.TotalRows, l.TotalColumns,
		l.ErrorMessage, l.DurationMs, createdAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert fetch log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get fetch log id: %w", err)
	}
	return id, nil
}

// FetchLogQueryOptions 读取记录查询选项
type FetchLogQueryOptions struct {
	Spreadsheet *string
	Sheet       *string
	Status      *model.FetchStatus
	Limit       int
}

// ListFetchLogs 按时间倒序列出读取记录
func (s *Store) ListFetchLogs(opts FetchLogQueryOptions) ([]model.FetchLog, error) {
	query := `SELECT id, request_id, spreadsheet, sheet, status, total_rows, total_columns,
		error_message, duration_ms, created_at FROM fetch_logs WHERE 1=1`
	args := []interface{}{}

	if opts.Spreadsheet != nil {
		query += " AND spreadsheet = ?"
		args = append(args, *opts.Spreadsheet)
	}
	if opts.Sheet != nil {
		query += " AND sheet = ?"
		args = append(args, *opts.Sheet)
	}
	if opts.Status != nil {
		query += " AND status = ?"
		args = append(args, string(*opts.Status))
	}
	query += " ORDER BY id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query fetch logs failed: %w", err)
	}
	defer rows.Close()

	out := []model.FetchLog{}
	for rows.Next() {
		var l model.FetchLog
		var status string
		if err := rows.Scan(
			&l.ID, &l.RequestID, &l.Spreadsheet, &l.Sheet, &status,
			&l.TotalRows, &l.TotalColumns,
			&l.ErrorMessage, &l.DurationMs, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fetch log failed: %w", err)
		}
		l.Status = model.FetchStatus(status)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fetch logs failed: %w", err)
	}
	return out, nil
}

// CountFetchLogs 统计读取记录数量
func (s *Store) CountFetchLogs() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM fetch_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count fetch logs failed: %w", err)
	}
	return n, nil
}

// PruneFetchLogs 删除早于 before 的记录
func (s *Store) PruneFetchLogs(before time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM fetch_logs WHERE created_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune fetch logs failed: %w", err)
	}
	return res.RowsAffected()
}
