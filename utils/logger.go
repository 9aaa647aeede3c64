package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"rentledger/services/logger"
)

// FileLogger ghi log ra file theo ngày, dùng làm kênh chẩn đoán phụ
// (ví dụ khi ghi audit thất bại).
type FileLogger struct {
	level       logger.Level
	file        *os.File
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
}

// NewFileLogger tạo thư mục log nếu chưa tồn tại và mở file log của ngày hiện tại
func NewFileLogger(dir string, level logger.Level) (*FileLogger, error) {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	logFile, err := os.OpenFile(filepath.Join(dir, fmt.Sprintf("app-%s.log", timestamp)), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &FileLogger{
		level:       level,
		file:        logFile,
		infoLogger:  log.New(logFile, "INFO: ", flags),
		warnLogger:  log.New(logFile, "WARN: ", flags),
		errorLogger: log.New(logFile, "ERROR: ", flags),
		debugLogger: log.New(logFile, "DEBUG: ", flags),
	}, nil
}

// Info ghi log thông tin
func (l *FileLogger) Info(format string, v ...interface{}) {
	if l.level <= logger.InfoLevel {
		l.infoLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *FileLogger) Warn(format string, v ...interface{}) {
	if l.level <= logger.WarnLevel {
		l.warnLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// Error ghi log lỗi
func (l *FileLogger) Error(format string, v ...interface{}) {
	if l.level <= logger.ErrorLevel {
		l.errorLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *FileLogger) Debug(format string, v ...interface{}) {
	if l.level <= logger.DebugLevel {
		l.debugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *FileLogger) Close() error {
	return l.file.Close()
}

// MultiLogger ghi cùng lúc ra nhiều logger
type MultiLogger []logger.Logger

func (m MultiLogger) Info(format string, v ...interface{}) {
	for _, l := range m {
		l.Info(format, v...)
	}
}

func (m MultiLogger) Warn(format string, v ...interface{}) {
	for _, l := range m {
		l.Warn(format, v...)
	}
}

func (m MultiLogger) Error(format string, v ...interface{}) {
	for _, l := range m {
		l.Error(format, v...)
	}
}

func (m MultiLogger) Debug(format string, v ...interface{}) {
	for _, l := range m {
		l.Debug(format, v...)
	}
}
