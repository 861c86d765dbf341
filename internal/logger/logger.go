// Package logger holds the process-wide structured logger. Output goes to a
// rotating file below the config directory; debug runs mirror it to stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/leitstand/internal/constants"
)

// Logger is the global logger instance. It stays nil until Init runs.
var Logger *log.Logger

var discard = log.New(io.Discard)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
	// Quiet keeps stderr silent even in debug mode, for the kiosk TUI
	Quiet bool
}

// Path is the log file below configDir
func Path(configDir string) string {
	return filepath.Join(configDir, constants.LogDirName, constants.AppName+".log")
}

// Init replaces the global logger
func Init(cfg Config) error {
	file := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return err
	}

	rotating := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}

	out := io.Writer(rotating)
	if cfg.Debug && !cfg.Quiet {
		out = io.MultiWriter(os.Stderr, rotating)
	}

	Logger = log.NewWithOptions(out, log.Options{
		Level:           levelFor(cfg.Debug),
		Prefix:          constants.AppName,
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
	})
	return nil
}

func levelFor(debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	return log.WarnLevel
}

func current() *log.Logger {
	if Logger == nil {
		return discard
	}
	return Logger
}

// SetLevel changes the level of the global logger
func SetLevel(level log.Level) {
	if Logger != nil {
		Logger.SetLevel(level)
	}
}

// EnsureLevel makes the logger emit level and above; a more verbose logger is left alone
func EnsureLevel(level log.Level) {
	if Logger != nil && Logger.GetLevel() > level {
		Logger.SetLevel(level)
	}
}

// With returns a child logger carrying keyvals, e.g. "component", "web"
func With(keyvals ...interface{}) *log.Logger {
	return current().With(keyvals...)
}

func Debug(msg string, keyvals ...interface{}) { current().Debug(msg, keyvals...) }

func Info(msg string, keyvals ...interface{}) { current().Info(msg, keyvals...) }

func Warn(msg string, keyvals ...interface{}) { current().Warn(msg, keyvals...) }

func Error(msg string, keyvals ...interface{}) { current().Error(msg, keyvals...) }

// Fatal logs msg and exits with status 1
func Fatal(msg string, keyvals ...interface{}) {
	current().Error(msg, keyvals...)
	os.Exit(1)
}
