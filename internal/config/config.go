package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"maniboard/internal/model"
	"maniboard/internal/parser"
)

// AppConfig 应用配置
type AppConfig struct {
	Server    ServerConfig    `toml:"server"`
	Auth      AuthConfig      `toml:"auth"`
	Data      DataConfig      `toml:"data"`
	Sheets    SheetsConfig    `toml:"sheets"`
	Cache     CacheConfig     `toml:"cache"`
	Business  BusinessConfig  `toml:"business"`
	Dashboard DashboardConfig `toml:"dashboard"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// AuthConfig 戰情室密码（单一共享密钥，空字符串表示不启用）
type AuthConfig struct {
	Password   string `toml:"password"`
	SessionTTL string `toml:"session_ttl"`
}

// DataConfig 数据目录（仅存放读取记录数据库）
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// SheetsConfig 试算表来源
type SheetsConfig struct {
	Source        string                    `toml:"source"`         // xlsx / gsheets
	Dir           string                    `toml:"dir"`            // xlsx 来源的工作簿目录
	BaseURL       string                    `toml:"base_url"`       // gsheets 匯出端点，测试时可替换
	Timeout       string                    `toml:"timeout"`        // 单次读取超时
	SpreadsheetID string                    `toml:"spreadsheet_id"` // 各分店日报所在试算表
	Branches      []string                  `toml:"branches"`       // 可选分页（分店）
	GIDs          map[string]string         `toml:"gids"`           // gsheets 分页名 -> gid
	Leaderboard   LeaderboardSourceConfig   `toml:"leaderboard"`
}

// LeaderboardSourceConfig 排行榜来源
type LeaderboardSourceConfig struct {
	SpreadsheetID string                    `toml:"spreadsheet_id"` // 为空时沿用 sheets.spreadsheet_id
	Sheet         string                    `toml:"sheet"`
	Columns       parser.LeaderboardColumns `toml:"columns"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	TTL        string `toml:"ttl"`
	MaxEntries int    `toml:"max_entries"`
}

// BusinessConfig 业务配置
type BusinessConfig struct {
	DefaultYear  int `toml:"default_year"`  // A2 缺失时的年份
	DefaultMonth int `toml:"default_month"` // B2 缺失时的月份
}

// DashboardConfig 看板配置
type DashboardConfig struct {
	Groups      []model.MetricGroup `toml:"groups"`
	TrendMetric string              `toml:"trend_metric"`
	MixMetrics  []string            `toml:"mix_metrics"`
	TopN        int                 `toml:"top_n"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
	Path          string
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	config := baseConfig()
	applyListDefaults(config)
	return config
}

// baseConfig 不含列表项的默认值；列表在解析 toml 之后再补，避免与文件中的数组合并
func baseConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20260,
			DevMode:     false,
			OpenBrowser: false,
		},
		Auth: AuthConfig{
			Password:   "",
			SessionTTL: "12h",
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Sheets: SheetsConfig{
			Source:  "xlsx",
			Dir:     "sheets",
			Timeout: "30s",
			Leaderboard: LeaderboardSourceConfig{
				Sheet:   "排行榜",
				Columns: parser.DefaultLeaderboardColumns(),
			},
		},
		Cache: CacheConfig{
			TTL:        "10m",
			MaxEntries: 0,
		},
		Business: BusinessConfig{
			DefaultYear:  parser.DefaultYear,
			DefaultMonth: parser.DefaultMonth,
		},
		Dashboard: DashboardConfig{
			TrendMetric: model.DefaultTrendMetric,
			TopN:        10,
		},
	}
}

// DefaultBranches 默认分店分页
func DefaultBranches() []string {
	return []string{
		"ALL", "東門店", "小西門店", "文賢店",
		"歸仁店", "永康店", "安中店", "鹽行店", "五甲店",
	}
}

func applyListDefaults(config *AppConfig) {
	if len(config.Sheets.Branches) == 0 {
		config.Sheets.Branches = DefaultBranches()
	}
	if len(config.Dashboard.Groups) == 0 {
		config.Dashboard.Groups = model.DefaultMetricGroups()
	}
	if len(config.Dashboard.MixMetrics) == 0 {
		config.Dashboard.MixMetrics = model.DefaultMixMetrics()
	}
}

// CacheTTL 解析缓存时间，非法值回退到 10 分钟
func (c *AppConfig) CacheTTL() time.Duration {
	return parseDuration(c.Cache.TTL, 10*time.Minute)
}

// SheetsTimeout 解析读取超时
func (c *AppConfig) SheetsTimeout() time.Duration {
	return parseDuration(c.Sheets.Timeout, 30*time.Second)
}

// SessionTTL 解析登录有效期
func (c *AppConfig) SessionTTL() time.Duration {
	return parseDuration(c.Auth.SessionTTL, 12*time.Hour)
}

// LeaderboardSpreadsheet 排行榜所在试算表
func (c *AppConfig) LeaderboardSpreadsheet() string {
	if c.Sheets.Leaderboard.SpreadsheetID != "" {
		return c.Sheets.Leaderboard.SpreadsheetID
	}
	return c.Sheets.SpreadsheetID
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 可执行文件同目录下的 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadConfigFrom(DefaultConfigPath())
}

// LoadConfigFrom 从指定路径加载配置；文件不存在时返回默认配置
func LoadConfigFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := baseConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, info, err
		}
		// 配置文件不存在，使用默认配置
		applyListDefaults(config)
		applyEnv(config)
		return config, info, nil
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	applyListDefaults(config)
	applyEnv(config)
	return config, info, nil
}

// applyEnv 环境变量覆盖（密码等不便写入配置文件的项）
func applyEnv(config *AppConfig) {
	if v := os.Getenv("MANIBOARD_PASSWORD"); v != "" {
		config.Auth.Password = v
	}
	if v := os.Getenv("MANIBOARD_SHEETS_DIR"); v != "" {
		config.Sheets.Dir = v
	}
	if v := os.Getenv("MANIBOARD_SPREADSHEET_ID"); v != "" {
		config.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv("MANIBOARD_SHEETS_SOURCE"); v != "" {
		config.Sheets.Source = v
	}
}

// SaveConfig 保存配置到指定路径
func SaveConfig(config *AppConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolvePath 相对路径以可执行文件目录为基准
func ResolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, p)
}

// EnsureDataDir 确保数据目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolvePath(config.Data.DataDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
