package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the service logger. Output goes to stdout and, when a log
// directory is configured, to <dir>/<service>.log as well.
func New(logDirectory string, service string) (*zap.SugaredLogger, error) {
	outputs := []string{"stdout"}

	if logDirectory != "" {
		if _, err := os.Stat(logDirectory); os.IsNotExist(err) {
			if err := os.MkdirAll(logDirectory, os.ModePerm); err != nil {
				return nil, err
			}
		}

		logPath := filepath.Join(logDirectory, service+".log")
		if _, err := os.OpenFile(logPath, os.O_CREATE|os.O_RDWR, os.ModePerm); err != nil {
			return nil, err
		}
		outputs = append(outputs, logPath)
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = outputs
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = false

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}
