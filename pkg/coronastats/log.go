package coronastats

import "go.uber.org/zap"

var loggerRaw *zap.Logger
var logger *zap.SugaredLogger

func init() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Development = false
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	var err error
	loggerRaw, err = cfg.Build()
	if err != nil {
		panic(err)
	}
	logger = loggerRaw.Sugar()
}

// SetVerbose switches the package logger to debug output.
func SetVerbose(verbose bool) {
	if !verbose {
		return
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Development = false
	l, err := cfg.Build()
	if err != nil {
		logger.Errorw("Could not rebuild verbose logger", "err", err)
		return
	}
	loggerRaw = l
	logger = l.Sugar()
}

func debugw(msg string, keysAndValues ...interface{}) {
	logger.Debugw(msg, keysAndValues...)
}

func errorw(msg string, keysAndValues ...interface{}) {
	logger.Errorw(msg, keysAndValues...)
}
