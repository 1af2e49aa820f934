package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging configures the default logger. When a log file is configured,
// output is also written there with size based rotation. The returned closer
// flushes and closes that file.
func SetupLogging(cfg LogConfig) io.Closer {
	switch cfg.Format {
	case "text":
		log.SetFormatter(log.TextFormatter)
	case "logfmt":
		log.SetFormatter(log.LogfmtFormatter)
	default:
		log.SetFormatter(log.JSONFormatter)
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.Warn("Unknown log level, using info", "level", cfg.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.File == "" {
		return io.NopCloser(nil)
	}
	rotating := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotating))
	log.Info("Logging to file", "file", cfg.File)
	return rotating
}
