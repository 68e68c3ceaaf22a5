package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"maniboard/internal/config"
	"maniboard/internal/server"
	"maniboard/internal/util"
)

var (
	port       = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode    = flag.Bool("dev", false, "开发模式")
	dataDir    = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	configPath = flag.String("config", "", "配置文件路径 (默认为可执行文件同目录的 config.toml)")
	sheetsDir  = flag.String("sheetsDir", "", "本地工作簿目录 (覆盖配置文件)")
	initConfig = flag.Bool("init", false, "写出默认 config.toml 后退出")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Maniboard - 門市業績戰情室")
	fmt.Println("==========================================")

	if *initConfig {
		path := *configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
			log.Fatalf("写出配置失败: %v", err)
		}
		fmt.Printf("已写出默认配置: %s\n", path)
		return
	}

	// 加载配置
	var (
		cfg  *config.AppConfig
		info config.LoadConfigInfo
		err  error
	)
	if *configPath != "" {
		cfg, info, err = config.LoadConfigFrom(*configPath)
	} else {
		cfg, info, err = config.LoadConfigWithInfo()
	}
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if *sheetsDir != "" {
		cfg.Sheets.Dir = *sheetsDir
	}

	if cfg.Sheets.SpreadsheetID == "" {
		log.Printf("未设定 sheets.spreadsheet_id（或 MANIBOARD_SPREADSHEET_ID），看板将无资料")
	}

	// 创建服务器
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("服务初始化失败: %v", err)
	}

	// 构建地址
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	// 启动服务器
	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 打开浏览器
	if cfg.Server.OpenBrowser && !cfg.Server.DevMode {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	if err := srv.Close(); err != nil {
		log.Printf("关闭数据库失败: %v", err)
	}
}
