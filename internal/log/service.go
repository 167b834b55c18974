// Package log provides the leveled logger shared by the CLI and the storage
// backends. Terminal output goes to the writer given at construction; an
// optional rotating file receives the same lines without colour.
package log

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Tiliavir/wellness-logger/internal/config"
)

type LoggerService interface {
	Debug(msg string, args ...any)

	Info(msg string, args ...any)

	Warn(msg string, args ...any)

	Error(msg string, args ...any)

	Named(name string) LoggerService
}

type LoggerServiceImpl struct {
	cfg      config.LogConfig
	name     string
	level    LogLevel
	terminal io.Writer
	file     io.WriteCloser
	mu       *sync.Mutex
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

// NewLoggerService builds a logger writing to terminal (usually os.Stderr so
// stdout stays clean for command output) and, when cfg.File is set, to a
// lumberjack-rotated file.
func NewLoggerService(name string, cfg config.LogConfig, terminal io.Writer) *LoggerServiceImpl {
	impl := &LoggerServiceImpl{
		cfg:      cfg,
		name:     name,
		level:    Parse(cfg.Level),
		terminal: terminal,
		mu:       &sync.Mutex{},
	}
	if cfg.TimeFormat == "" {
		impl.cfg.TimeFormat = time.RFC3339
	}
	if cfg.File != "" {
		impl.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.Rotation.MaxSize,
			MaxBackups: cfg.Rotation.MaxBackups,
			MaxAge:     cfg.Rotation.MaxAge,
			Compress:   cfg.Rotation.Compress,
		}
	}
	return impl
}

// Discard returns a logger that drops everything.
func Discard() LoggerService {
	return NewLoggerService("", config.LogConfig{Level: "ERROR", NoColor: true}, io.Discard)
}

func (impl *LoggerServiceImpl) log(level LogLevel, msg string, args ...any) {
	if level < impl.level {
		return
	}

	timestamp := time.Now().Format(impl.cfg.TimeFormat)
	formattedMsg := fmt.Sprintf(msg, args...)

	var line string
	if impl.cfg.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Service:   impl.name,
			Message:   formattedMsg,
		}
		jsonBytes, _ := json.Marshal(entry)
		line = string(jsonBytes)
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if impl.name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, impl.name)
		}
		line = prefix + " " + formattedMsg
	}

	impl.mu.Lock()
	defer impl.mu.Unlock()

	if impl.terminal != nil {
		if impl.cfg.JSON || impl.cfg.NoColor {
			fmt.Fprintln(impl.terminal, line)
		} else {
			fmt.Fprintln(impl.terminal, Color(level).Sprint(line))
		}
	}
	if impl.file != nil {
		fmt.Fprintln(impl.file, line)
	}
}

func (impl *LoggerServiceImpl) Debug(msg string, args ...any) {
	impl.log(Debug, msg, args...)
}

func (impl *LoggerServiceImpl) Info(msg string, args ...any) {
	impl.log(Info, msg, args...)
}

func (impl *LoggerServiceImpl) Warn(msg string, args ...any) {
	impl.log(Warn, msg, args...)
}

func (impl *LoggerServiceImpl) Error(msg string, args ...any) {
	impl.log(Error, msg, args...)
}

func (impl *LoggerServiceImpl) Named(name string) LoggerService {
	if impl.name != "" {
		name = fmt.Sprintf("%s/%s", impl.name, name)
	}
	return &LoggerServiceImpl{
		cfg:      impl.cfg,
		name:     name,
		level:    impl.level,
		terminal: impl.terminal,
		file:     impl.file, // Share the same writers
		mu:       impl.mu,
	}
}

// Close releases the log file, if any.
func (impl *LoggerServiceImpl) Close() error {
	if impl.file == nil {
		return nil
	}
	return impl.file.Close()
}
