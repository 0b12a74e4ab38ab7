package logger

import (
	"fmt"
	"strings"

	"trade-journal-go/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the journal logger. "json" selects the production encoder,
// anything else the human-readable console encoder.
func NewLogger(cfg config.Logger) (*zap.Logger, error) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if strings.EqualFold(cfg.Format, "json") {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zc.Level = zap.NewAtomicLevelAt(logLevel)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// CLI output goes to stdout, logs stay on stderr
	zc.OutputPaths = []string{"stderr"}

	return zc.Build()
}
