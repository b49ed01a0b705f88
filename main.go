package main

import (
	"fmt"
	"os"

	"github.com/lijie8778708/DevConnector/internal/config"
	"github.com/lijie8778708/DevConnector/internal/database"
	"github.com/lijie8778708/DevConnector/internal/logger"
	"github.com/lijie8778708/DevConnector/internal/repohost"
	"github.com/lijie8778708/DevConnector/internal/router"
)

func main() {
	// 加载配置
	cfg, err := config.Load(os.Getenv("DEVC_CONFIG"))
	if err != nil {
		logger.Log.Fatalf("load config: %v", err)
	}

	closer, err := logger.Init(cfg.Log)
	if err != nil {
		logger.Log.Fatalf("init logger: %v", err)
	}
	defer closer.Close()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Log.Fatalf("init database: %v", err)
	}

	// 自动迁移
	if err := database.AutoMigrate(db); err != nil {
		logger.Log.Fatalf("migrate database: %v", err)
	}

	repos, err := repohost.New(cfg.GitHub)
	if err != nil {
		logger.Log.Fatalf("init github client: %v", err)
	}

	// 初始化路由
	r := router.SetupRouter(cfg, db, repos)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logger.Log.WithField("addr", addr).Info("server listening")
	if err := r.Run(addr); err != nil {
		logger.Log.Fatalf("run server: %v", err)
	}
}
