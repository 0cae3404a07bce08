package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu    sync.Mutex
	sugar *zap.SugaredLogger
)

// Init builds the process logger. Development gets the human-readable
// console encoder, everything else gets production JSON.
func Init(environment string) {
	mu.Lock()
	defer mu.Unlock()

	var (
		l   *zap.Logger
		err error
	)
	if environment == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		l = zap.NewNop()
	}

	sugar = l.Sugar()
}

func get() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()

	if sugar == nil {
		// tests and tools that never call Init
		sugar = zap.NewNop().Sugar()
	}
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

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	_ = get().Sync()
}
