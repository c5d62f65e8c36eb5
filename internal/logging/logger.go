// Package logging provides config-driven categorized file-based logging
// for turnsmith. Logs are written to .turnsmith/logs/ with one file per
// category, per day. Logging is controlled by debug_mode in
// .turnsmith/config.yaml — when false, no logs are written.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Category identifies which pipeline stage a log line belongs to.
type Category string

const (
	CategorySegmenter  Category = "segmenter"  // Turn segmentation (C1)
	CategoryWalker     Category = "walker"     // Markdown walking (C2)
	CategoryResolver   Category = "resolver"   // Path resolution (C3)
	CategoryClassifier Category = "classifier" // Patch/replace classification (C4)
	CategoryPatch      Category = "patch"      // Patch engines (C5)
	CategoryDriver     Category = "driver"     // Orchestration
)

// loggingConfig mirrors the relevant parts of config.LoggingConfig to
// avoid a circular import between internal/config and internal/logging.
type loggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// configFile is the shape of .turnsmith/config.yaml that this package
// cares about.
type configFile struct {
	Logging loggingConfig `yaml:"logging"`
}

// Logger wraps a standard logger bound to a single category's log file.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	logsDir   string
	workspace string
	cfg       loggingConfig
	configMu  sync.RWMutex
	logLevel  int
)

// Log levels, ordered so that a lower value is more verbose.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Initialize sets up the logging directory and loads config. Call once at
// startup with the output workspace path.
func Initialize(ws string) error {
	if ws == "" {
		return fmt.Errorf("workspace path required")
	}

	workspace = ws
	logsDir = filepath.Join(workspace, ".turnsmith", "logs")

	if err := loadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "[logging] warning: could not load config: %v\n", err)
		configMu.Lock()
		cfg.DebugMode = false
		configMu.Unlock()
	}

	configMu.RLock()
	debug := cfg.DebugMode
	configMu.RUnlock()
	if !debug {
		return nil
	}

	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryDriver)
	boot.Info("logging initialized, workspace=%s, level=%s", workspace, cfg.Level)
	return nil
}

// loadConfig reads the logging section out of .turnsmith/config.yaml.
func loadConfig() error {
	configMu.Lock()
	defer configMu.Unlock()

	configPath := filepath.Join(workspace, ".turnsmith", "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.DebugMode = false
			return nil
		}
		return err
	}

	var cf configFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	cfg = cf.Logging

	switch cfg.Level {
	case "debug":
		logLevel = LevelDebug
	case "warn", "warning":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		logLevel = LevelInfo
	}
	return nil
}

// IsCategoryEnabled reports whether a category should produce output.
func IsCategoryEnabled(category Category) bool {
	configMu.RLock()
	defer configMu.RUnlock()

	if !cfg.DebugMode {
		return false
	}
	if cfg.Categories == nil {
		return true
	}
	enabled, exists := cfg.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or lazily creates) the logger for category. A disabled
// category, or a package that was never Initialize-d, yields a no-op
// logger rather than nil.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) || logsDir == "" {
		return &Logger{category: category}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, category))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] warning: could not open log file %s: %v\n", logPath, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelInfo {
		return
	}
	l.logger.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelWarn {
		return
	}
	l.logger.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}

// CloseAll closes every open log file. Call at shutdown.
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// Convenience wrappers — quick logging without fetching a logger first.

func Segmenter(format string, args ...interface{}) { Get(CategorySegmenter).Info(format, args...) }
func SegmenterDebug(format string, args ...interface{}) {
	Get(CategorySegmenter).Debug(format, args...)
}

func Walker(format string, args ...interface{})      { Get(CategoryWalker).Info(format, args...) }
func WalkerDebug(format string, args ...interface{}) { Get(CategoryWalker).Debug(format, args...) }

func Resolver(format string, args ...interface{})      { Get(CategoryResolver).Info(format, args...) }
func ResolverDebug(format string, args ...interface{}) { Get(CategoryResolver).Debug(format, args...) }

func Classifier(format string, args ...interface{}) { Get(CategoryClassifier).Info(format, args...) }
func ClassifierDebug(format string, args ...interface{}) {
	Get(CategoryClassifier).Debug(format, args...)
}

func Patch(format string, args ...interface{})      { Get(CategoryPatch).Info(format, args...) }
func PatchDebug(format string, args ...interface{}) { Get(CategoryPatch).Debug(format, args...) }

func Driver(format string, args ...interface{})      { Get(CategoryDriver).Info(format, args...) }
func DriverDebug(format string, args ...interface{}) { Get(CategoryDriver).Debug(format, args...) }
