package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.RWMutex
	Logger *log.Logger
)

// Init initializes the logger with default settings
func Init() {
	Initialize("info")
}

// Initialize sets up the global logger with Charm's log library writing to stderr
func Initialize(logLevel string) {
	InitializeWithWriter(logLevel, os.Stderr)
}

// InitializeWithWriter sets up the global logger writing to w. Tests use it to
// capture or silence output.
func InitializeWithWriter(logLevel string, w io.Writer) {
	l := log.New(w)
	l.SetLevel(parseLevel(logLevel))
	l.SetReportCaller(true)
	l.SetReportTimestamp(true)

	mu.Lock()
	Logger = l
	mu.Unlock()

	l.Debug("Logger initialized", "level", strings.ToLower(logLevel))
}

func parseLevel(logLevel string) log.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Get returns the global logger instance
func Get() *log.Logger {
	mu.RLock()
	l := Logger
	mu.RUnlock()

	if l == nil {
		Initialize("info")
		mu.RLock()
		l = Logger
		mu.RUnlock()
	}
	return l
}

// WithContext creates a new logger with additional context fields
func WithContext(fields ...any) *log.Logger {
	return Get().With(fields...)
}

// Service creates a logger for a specific service
func Service(serviceName string) *log.Logger {
	return WithContext("service", serviceName)
}

// Database creates a logger for database operations
func Database() *log.Logger {
	return WithContext("component", "database")
}

// HTTP creates a logger for HTTP operations
func HTTP() *log.Logger {
	return WithContext("component", "http")
}

// Migration creates a logger for migration operations
func Migration() *log.Logger {
	return WithContext("component", "migration")
}

// Repository creates a logger for repository operations
func Repository(repoName string) *log.Logger {
	return WithContext("component", "repository", "repository", repoName)
}

// Handler creates a logger for HTTP handlers
func Handler(handlerName string) *log.Logger {
	return WithContext("component", "handler", "handler", handlerName)
}

// Client creates a logger for outbound integrations
func Client(clientName string) *log.Logger {
	return WithContext("component", "client", "client", clientName)
}
