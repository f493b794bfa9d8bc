package middleware

import (
	"fmt"
	"os"
	"strings"
)

// LogLevel represents the logging level
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	QUIET
)

var currentLogLevel LogLevel = INFO

// SetLogLevel sets the current logging level
func SetLogLevel(level LogLevel) {
	currentLogLevel = level
}

// SetLogLevelFromString sets the log level from a string
func SetLogLevelFromString(level string) {
	switch strings.ToLower(level) {
	case "debug":
		currentLogLevel = DEBUG
	case "info":
		currentLogLevel = INFO
	case "warn", "warning":
		currentLogLevel = WARN
	case "error":
		currentLogLevel = ERROR
	case "quiet":
		currentLogLevel = QUIET
	default:
		currentLogLevel = INFO
	}
}

func shouldLog(level LogLevel) bool {
	return level >= currentLogLevel
}

// LogDebug logs a debug message
func LogDebug(component, message string, args ...interface{}) {
	if shouldLog(DEBUG) {
		fmt.Fprintf(os.Stderr, "[DEBUG] %s: %s\n", component, fmt.Sprintf(message, args...))
	}
}

// LogInfo logs an info message
func LogInfo(component, message string, args ...interface{}) {
	if shouldLog(INFO) {
		fmt.Fprintf(os.Stderr, "[INFO] %s: %s\n", component, fmt.Sprintf(message, args...))
	}
}

// LogWarn logs a warning message
func LogWarn(component, message string, args ...interface{}) {
	if shouldLog(WARN) {
		fmt.Fprintf(os.Stderr, "[WARN] %s: %s\n", component, fmt.Sprintf(message, args...))
	}
}

// LogError logs an error message
func LogError(component, message string, args ...interface{}) {
	if shouldLog(ERROR) {
		fmt.Fprintf(os.Stderr, "[ERROR] %s: %s\n", component, fmt.Sprintf(message, args...))
	}
}

// InitLogger initializes the logger from the LOG_LEVEL environment variable.
// Log output goes to stderr so the coordinator's timing record on stdout
// stays machine-parseable.
func InitLogger() {
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		SetLogLevelFromString(logLevel)
	}
}
