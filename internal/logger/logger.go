package logger

import (
	"io"
	"time"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

// Setup points logrus at a rotating file and returns the writer so the
// HTTP access log can share it.
func Setup(filename, level string) io.Writer {
	rotator := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
		Compress:   true,
	}

	logrus.SetOutput(rotator)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	return rotator
}

// GormLogger routes GORM output through logrus.
func GormLogger() gormlogger.Interface {
	return gormlogger.New(logrus.StandardLogger(), gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
