package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MonkyMars/gecho"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogger forwards gorm's SQL log to gecho. Slow statements are logged as
// warnings, failed ones as errors; "record not found" is not an error here.
type GormLogger struct {
	log           *gecho.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(log *gecho.Logger, level logger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		log:           log,
		level:         level,
		slowThreshold: slowThreshold,
	}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		l.log.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		l.log.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		l.log.Error(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.Error("Database query failed",
			gecho.Field("error", err),
			gecho.Field("query", sql),
			gecho.Field("rows", rows),
			gecho.Field("duration", elapsed),
		)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		sql, rows := fc()
		l.log.Warn("Slow database query detected",
			gecho.Field("query", sql),
			gecho.Field("rows", rows),
			gecho.Field("duration", elapsed),
		)
	case l.level >= logger.Info:
		sql, rows := fc()
		l.log.Debug("Database query",
			gecho.Field("query", sql),
			gecho.Field("rows", rows),
			gecho.Field("duration", elapsed),
		)
	}
}
