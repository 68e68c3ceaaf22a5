package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	v1 "maniboard/internal/api/v1"
	"maniboard/internal/cache"
	"maniboard/internal/config"
	"maniboard/internal/model"
	"maniboard/internal/parser"
	"maniboard/internal/service/dashboard"
	"maniboard/internal/sheets"
	"maniboard/internal/store"
)

// fetchLogRetention 启动时清理更早的读取记录
const fetchLogRetention = 30 * 24 * time.Hour

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	svc    *dashboard.Service
	v1     *v1.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) (*Server, error) {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化 SQLite Store（只存读取记录）
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	sqliteStore, err := store.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("初始化数据库失败: %w", err)
	}
	if n, err := sqliteStore.PruneFetchLogs(time.Now().Add(-fetchLogRetention)); err != nil {
		log.Printf("清理读取记录失败: %v", err)
	} else if n > 0 {
		log.Printf("已清理 %d 条过期读取记录", n)
	}

	reader, err := NewReader(cfg)
	if err != nil {
		_ = sqliteStore.Close()
		return nil, err
	}

	svc := NewDashboardService(cfg, sheets.NewLoggingReader(reader, sqliteStore))
	handler := v1.NewHandler(svc, sqliteStore, v1.AuthOptions{
		Password:   cfg.Auth.Password,
		SessionTTL: cfg.SessionTTL(),
	})
	if cfg.Auth.Password == "" {
		log.Printf("未设定戰情室密码，所有接口无需登录")
	}

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		svc:    svc,
		v1:     handler,
	}

	s.setupRoutes(devMode)

	return s, nil
}

// NewReader 按配置选择试算表来源
func NewReader(cfg *config.AppConfig) (sheets.Reader, error) {
	switch cfg.Sheets.Source {
	case "", "xlsx":
		dir := config.ResolvePath(cfg.Sheets.Dir)
		log.Printf("试算表来源: 本地工作簿 %s", dir)
		return sheets.NewXLSXReader(dir), nil
	case "gsheets":
		log.Printf("试算表来源: Google Sheets")
		return sheets.NewGSheetsReader(cfg.Sheets.BaseURL, cfg.SheetsTimeout(), cfg.Sheets.GIDs), nil
	default:
		return nil, fmt.Errorf("未知的试算表来源: %s", cfg.Sheets.Source)
	}
}

// NewDashboardService 按配置组装看板服务
func NewDashboardService(cfg *config.AppConfig, reader sheets.Reader) *dashboard.Service {
	ttl := cfg.CacheTTL()
	return dashboard.NewService(
		reader,
		cache.New[*model.NormalizedSheetTable](cfg.Cache.MaxEntries, ttl),
		cache.New[*model.Leaderboard](cfg.Cache.MaxEntries, ttl),
		parser.NewNormalizer(cfg.Business.DefaultYear, cfg.Business.DefaultMonth),
		parser.NewLeaderboardCleaner(cfg.Sheets.Leaderboard.Columns, nil),
		dashboard.Options{
			SpreadsheetID:          cfg.Sheets.SpreadsheetID,
			LeaderboardSpreadsheet: cfg.LeaderboardSpreadsheet(),
			LeaderboardSheet:       cfg.Sheets.Leaderboard.Sheet,
			Branches:               cfg.Sheets.Branches,
			Groups:                 cfg.Dashboard.Groups,
			TrendMetric:            cfg.Dashboard.TrendMetric,
			MixMetrics:             cfg.Dashboard.MixMetrics,
			TopN:                   cfg.Dashboard.TopN,
		},
	)
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}

	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// Handler 返回 http.Handler（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 关闭数据库
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
