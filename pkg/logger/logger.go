package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	sugar = zap.NewNop().Sugar()
)

// Init builds the process logger. "production" gets JSON at info level,
// anything else gets the console encoder at debug level.
func Init(environment string) {
	var cfg zap.Config
	if strings.EqualFold(environment, "production") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewExample()
	}

	Set(l)
}

// Set swaps the underlying logger, mainly for tests.
func Set(l *zap.Logger) {
	mu.Lock()
	sugar = l.Sugar()
	mu.Unlock()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Debug(msg string, keysAndValues ...any) {
	get().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	get().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	get().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	get().Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...any) {
	get().Fatalw(msg, keysAndValues...)
}

func Sync() {
	_ = get().Sync()
}
