package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultFilename 读取记录数据库文件名
const DefaultFilename = "maniboard.db"

//go:embed schema.sql
var fetchLogSchema string

// Store 试算表读取记录（fetch_logs）的 SQLite 存储
// 规范化后的表格只在缓存里，不落盘
type Store struct {
	db   *sql.DB
	path string
}

// Open 打开 dataDir 下的读取记录库，不存在时创建
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	path := filepath.Join(dataDir, DefaultFilename)

	// 读取记录由请求路径并发写入，WAL + busy_timeout 避免 database is locked
	db, err := sql.Open("sqlite3", "file:"+path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("打开读取记录库失败: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(fetchLogSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("初始化 fetch_logs 失败: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path 数据库文件路径
func (s *Store) Path() string {
	return s.path
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	return s.db.Close()
}
