package main

import (
	"fmt"
	"log"
	"strings"
)

// LogLevel orders the server log levels from most to least verbose.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var logLevelNames = [...]string{
	LogLevelDebug: "debug",
	LogLevelInfo:  "info",
	LogLevelWarn:  "warn",
	LogLevelError: "error",
}

// String returns the level's lowercase name.
func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(logLevelNames) {
		return "unknown"
	}
	return logLevelNames[l]
}

// parseLogLevel maps a level name (case-insensitive) to a LogLevel.
// Unrecognized names fall back to info.
func parseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger writes leveled registry-server log lines through the stdlib log
// package, dropping messages below its configured level.
type Logger struct {
	level LogLevel
}

// NewLogger creates a logger filtering at the named level.
func NewLogger(level string) *Logger {
	return &Logger{level: parseLogLevel(level)}
}

func (l *Logger) logf(level LogLevel, format string, v ...any) {
	if level < l.level {
		return
	}
	log.Printf("["+strings.ToUpper(level.String())+"] "+format, v...)
}

// Debugf logs a debug message.
func (l *Logger) Debugf(format string, v ...any) { l.logf(LogLevelDebug, format, v...) }

// Infof logs an info message.
func (l *Logger) Infof(format string, v ...any) { l.logf(LogLevelInfo, format, v...) }

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, v ...any) { l.logf(LogLevelWarn, format, v...) }

// Errorf logs an error message.
func (l *Logger) Errorf(format string, v ...any) { l.logf(LogLevelError, format, v...) }

// Fatalf logs a message and exits, regardless of the configured level.
func (l *Logger) Fatalf(format string, v ...any) {
	log.Fatalf("[FATAL] "+format, v...)
}

// Debug logs a debug message from its arguments.
func (l *Logger) Debug(v ...any) { l.logf(LogLevelDebug, "%s", fmt.Sprint(v...)) }

// Info logs an info message from its arguments.
func (l *Logger) Info(v ...any) { l.logf(LogLevelInfo, "%s", fmt.Sprint(v...)) }

// Warn logs a warning message from its arguments.
func (l *Logger) Warn(v ...any) { l.logf(LogLevelWarn, "%s", fmt.Sprint(v...)) }

// Error logs an error message from its arguments.
func (l *Logger) Error(v ...any) { l.logf(LogLevelError, "%s", fmt.Sprint(v...)) }
