// internal/app/shop/logging.go
package shop

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotating log file settings. lumberjack sizes files in megabytes.
const (
	LogFileName   = "shop.log"
	LogMaxSizeMB  = 1
	LogMaxBackups = 10
)

// configureLogging builds the app logger. Debug and testing apps log to the
// console at debug level. Otherwise the level is info and lines also go to
// one size-rotated file, <LOG_FOLDER>/shop.log.
func configureLogging(_ context.Context, a *App) error {
	out := a.opts.LogOutput
	if out == nil {
		out = zapcore.Lock(os.Stderr)
	}
	enc := zapcore.NewConsoleEncoder(encoderConfig())

	if a.Debug || a.Testing {
		a.level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		a.Logger = zap.New(zapcore.NewCore(enc, out, a.level), zap.AddCaller()).Named(a.Name)
		return nil
	}

	a.level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	dir := a.Config.String("LOG_FOLDER")
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log folder: %w", err)
	}
	file := filepath.Join(dir, LogFileName)
	rot := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    LogMaxSizeMB,
		MaxBackups: LogMaxBackups,
	}
	a.rotators = append(a.rotators, rot)
	a.logFiles = append(a.logFiles, file)

	core := zapcore.NewTee(
		zapcore.NewCore(enc, out, a.level),
		zapcore.NewCore(enc, zapcore.AddSync(rot), a.level),
	)
	a.Logger = zap.New(core, zap.AddCaller()).Named(a.Name)
	return nil
}

// encoderConfig writes "<time> <LEVEL> <name> <message> <caller>" lines.
func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeCaller = zapcore.FullCallerEncoder
	return cfg
}

// LogLevel returns the minimum level the app logs at.
func (a *App) LogLevel() zapcore.Level {
	return a.level.Level()
}

// SetLogLevel changes the level at runtime.
func (a *App) SetLogLevel(l zapcore.Level) {
	a.level.SetLevel(l)
}

// LogFiles returns the paths of the rotating log files, if any.
func (a *App) LogFiles() []string {
	return append([]string(nil), a.logFiles...)
}
