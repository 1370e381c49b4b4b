package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/hae/internal/constants"
)

// Logger is the process-wide logger. It stays nil until Init is called,
// and every helper below is a no-op while it is nil.
var Logger *log.Logger

type Config struct {
	Debug   bool
	DataDir string
}

// Init points the global logger at a rotating file under DataDir/logs.
// In debug mode records are mirrored to stderr as well.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.DataDir, constants.LogDirName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	var w io.Writer = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, w)
	}

	Logger = New(w, cfg.Debug)
	return nil
}

// New builds a logger with the application prefix. Callers that need their own
// sink, such as the dev server, use it directly instead of the global.
func New(w io.Writer, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportCaller:    debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs and exits with status 1
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
