/*
Copyright The vcd-e2e Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

var (
	rootOnce sync.Once
	rootLog  logr.Logger
)

// Root returns the process-wide base logger, building it on first use.
// Set LOG_FORMAT=console for human-readable output; the default is JSON.
func Root() logr.Logger {
	rootOnce.Do(func() {
		var cfg zap.Config
		if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
			cfg = zap.NewDevelopmentConfig()
		} else {
			cfg = zap.NewProductionConfig()
		}
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)

		zl, err := cfg.Build()
		if err != nil {
			// Build only fails on invalid config; fall back to a no-op logger.
			rootLog = logr.Discard()
			return
		}
		rootLog = zapr.NewLogger(zl)
	})
	return rootLog
}

// Logger provides structured logging for vCD suite components
type Logger struct {
	logger    logr.Logger
	component string
	logLevel  string
}

// NewLogger creates a new logger for the specified component
func NewLogger(component string) *Logger {
	return &Logger{
		logger:    Root().WithName(component),
		component: component,
		logLevel:  getLogLevel(component),
	}
}

// Logr exposes the underlying logr.Logger for callers that take one
func (l *Logger) Logr() logr.Logger {
	return l.logger
}

// Info logs an info message with structured key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	if l.shouldLog("info") {
		l.logger.Info(msg, keysAndValues...)
	}
}

// Error logs an error message with structured key-value pairs
func (l *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(err, msg, keysAndValues...)
}

// Debug logs a debug message (only shown if debug logging is enabled)
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	if l.shouldLog("debug") {
		l.logger.V(1).Info(msg, keysAndValues...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	if l.shouldLog("warn") {
		l.logger.Info("WARNING: "+msg, keysAndValues...)
	}
}

// WithValues returns a new logger with additional key-value pairs
func (l *Logger) WithValues(keysAndValues ...interface{}) *Logger {
	return &Logger{
		logger:    l.logger.WithValues(keysAndValues...),
		component: l.component,
		logLevel:  l.logLevel,
	}
}

// WithName returns a new logger with an additional name segment
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		logger:    l.logger.WithName(name),
		component: l.component + "." + name,
		logLevel:  l.logLevel,
	}
}

// GetComponent returns the component name
func (l *Logger) GetComponent() string {
	return l.component
}

// getLogLevel resolves the level for a component: LOG_LEVEL_<COMPONENT>
// wins over LOG_LEVEL, which defaults to info.
func getLogLevel(component string) string {
	key := "LOG_LEVEL_" + strings.ToUpper(strings.ReplaceAll(component, ".", "_"))
	if level := strings.ToLower(os.Getenv(key)); level != "" {
		return level
	}
	level := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if level == "" {
		return "info"
	}
	return level
}

// shouldLog determines if a message should be logged based on the current log level
func (l *Logger) shouldLog(messageLevel string) bool {
	// Log level hierarchy: debug < info < warn < error
	levels := map[string]int{
		"debug": 0,
		"info":  1,
		"warn":  2,
		"error": 3,
	}

	currentLevel, exists := levels[l.logLevel]
	if !exists {
		currentLevel = levels["info"]
	}

	msgLevel, exists := levels[messageLevel]
	if !exists {
		msgLevel = levels["info"]
	}

	return msgLevel >= currentLevel
}

// Global component loggers for common use cases
var (
	// ClientLogger is the base logger for vCD client components
	ClientLogger = NewLogger("client")
	// SweepLogger is the base logger for the resource sweeper
	SweepLogger = NewLogger("sweep")
)
