package helpers

import (
	"fmt"
	"io"
	"time"

	"sjsage522/storecrawler/logger"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerInterface defines the interface for logger implementations
type LoggerInterface interface {
	LogError(component string, err error)
	LogInfo(format string, args ...interface{})
}

// Logger appends errors to a rotating error log and forwards info messages to the console logger
type Logger struct {
	errorFile io.WriteCloser
}

// NewLogger creates a new logger instance writing errors to errorFile
func NewLogger(errorFile string) *Logger {
	return &Logger{
		errorFile: &lumberjack.Logger{
			Filename:   errorFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		},
	}
}

// LogError logs an error to the error file with component name and timestamp
func (l *Logger) LogError(component string, err error) {
	logger.LogError(component, err, "operation failed")

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	if _, werr := fmt.Fprintf(l.errorFile, "[%s] [%s] %s\n", timestamp, component, err.Error()); werr != nil {
		logger.Warn("failed to write error log: %v", werr)
	}
}

// LogInfo logs an informational message
func (l *Logger) LogInfo(format string, args ...interface{}) {
	logger.Info(format, args...)
}

// Close closes the error log file
func (l *Logger) Close() error {
	return l.errorFile.Close()
}
