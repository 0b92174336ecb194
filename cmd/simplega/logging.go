package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lixenwraith/simplega/parameter"
)

// setupLogging returns a no-op logger unless debug is set, in which case JSON
// logs go to a size-rotated file under dir
func setupLogging(dir string, debug bool) (*zap.Logger, func(), error) {
	if !debug {
		return zap.NewNop(), func() {}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(dir, parameter.LogFileName),
		MaxSize:    parameter.LogMaxSizeMB,
		MaxBackups: parameter.LogMaxBackups,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(writer), zapcore.DebugLevel)
	logger := zap.New(core)

	closeFn := func() {
		_ = logger.Sync()
		_ = writer.Close()
	}
	return logger, closeFn, nil
}
