package logger

import (
	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

// Init must be called once before anything logs.
func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger.Sugar()
}

// Sync flushes buffered entries on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
