package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// gormBridge routes GORM output onto zap levels: failed statements at error,
// slow statements at warn, everything else at debug.
type gormBridge struct {
	log   *Logger
	level gormLogger.LogLevel
	slow  time.Duration
}

// GormLogger returns a GORM logger that writes through l. Statements slower
// than slow are reported at warn level; record-not-found is never logged.
func GormLogger(l *Logger, level gormLogger.LogLevel, slow time.Duration) gormLogger.Interface {
	return &gormBridge{log: l.With("component", "gorm"), level: level, slow: slow}
}

func (g *gormBridge) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	c := *g
	c.level = level
	return &c
}

func (g *gormBridge) Info(_ context.Context, msg string, args ...any) {
	if g.level >= gormLogger.Info {
		g.log.Debug(fmt.Sprintf(msg, args...))
	}
}

func (g *gormBridge) Warn(_ context.Context, msg string, args ...any) {
	if g.level >= gormLogger.Warn {
		g.log.Warn(fmt.Sprintf(msg, args...))
	}
}

func (g *gormBridge) Error(_ context.Context, msg string, args ...any) {
	if g.level >= gormLogger.Error {
		g.log.Error(fmt.Sprintf(msg, args...))
	}
}

func (g *gormBridge) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= gormLogger.Error:
		sql, rows := fc()
		g.log.Error("query failed", "error", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case g.slow > 0 && elapsed > g.slow && g.level >= gormLogger.Warn:
		sql, rows := fc()
		g.log.Warn("slow query", "threshold", g.slow, "elapsed", elapsed, "rows", rows, "sql", sql)
	case g.level >= gormLogger.Info:
		sql, rows := fc()
		g.log.Debug("query", "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}

// GormLevel maps a log mode onto a GORM log level.
func GormLevel(mode string) gormLogger.LogLevel {
	switch mode {
	case ModeDev:
		return gormLogger.Info
	case ModeProd:
		return gormLogger.Warn
	default:
		return gormLogger.Silent
	}
}
