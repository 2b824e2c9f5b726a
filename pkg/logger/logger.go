// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileMaxSizeMB  = 100
	fileMaxBackups = 5
	fileMaxAgeDays = 14
)

var output io.Writer = os.Stdout

// TeeFile makes later New and Init calls also write to a size-rotated file
// at path. The returned closer releases the file.
func TeeFile(path string) io.Closer {
	f := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		MaxAge:     fileMaxAgeDays,
		Compress:   true,
	}
	output = io.MultiWriter(output, f)
	return f
}

// New builds a logger. format "pretty" or "console" gives human readable
// output, anything else JSON lines.
func New(level, format string) zerolog.Logger {
	var w io.Writer = output
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "pretty", "console":
		w = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Init replaces the global logger used through github.com/rs/zerolog/log.
func Init(level, format string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = New(level, format)
}

func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
