// Package logger 进程级结构化日志
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lijie8778708/DevConnector/internal/config"
	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// 未调用 Init 时（测试、工具）也能输出到 stderr
func init() {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)
	Log = logrus.NewEntry(logger).WithField("service", "devconnector")
}

// Init 设置日志级别和输出，配置了 cfg.File 时同时写 stderr 和文件，
// 返回的 closer 用于关闭文件
func Init(cfg config.LogConfig) (io.Closer, error) {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		lv, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = lv
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.File == "" {
		logger.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(io.MultiWriter(os.Stderr, f))
	return f, nil
}
