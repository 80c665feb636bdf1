package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"pkgshift/internal/config"
)

// New builds the run logger: JSON lines to a rotated file under logsDir. The
// console stays reserved for the interactive report, so nothing is mirrored
// to stdout. When the file cannot be prepared the logger degrades to stderr
// rather than failing the run.
func New(cfg config.LogConfig, logsDir string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	output, err := buildOutput(cfg, logsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file unavailable, logging to stderr: %v\n", err)
		output = os.Stderr
	}
	logger.SetOutput(output)

	return logger
}

// Discard returns a logger that drops everything, for tests and dry paths
// that have no logs directory yet.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func buildOutput(cfg config.LogConfig, logsDir string) (io.Writer, error) {
	if logsDir == "" {
		return os.Stderr, nil
	}
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(logsDir, "pkgshift.log"),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	}, nil
}
