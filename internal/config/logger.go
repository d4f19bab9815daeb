package config

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger builds a zap logger: coloured console output by default, JSON when
// asked. A File replaces stderr for both log and error output.
func (l LogConfig) Logger() (*zap.SugaredLogger, error) {
	level, err := zap.ParseAtomicLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", l.Level, err)
	}
	zc := zap.NewDevelopmentConfig()
	if l.JSON {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level
	if l.File != "" {
		zc.OutputPaths = []string{l.File}
		zc.ErrorOutputPaths = []string{l.File}
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
