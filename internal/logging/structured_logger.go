package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/tenantload/pkg/tenantload"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// StructuredLogger writes one JSON object per message using zap.
// Verbose maps to the debug level.
type StructuredLogger struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

// NewStructuredLogger creates a JSON logger writing to w.
func NewStructuredLogger(w io.Writer, verbose bool) *StructuredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(w), level)
	logger := zap.New(core).With(zap.String("component", "tenantload"))
	return &StructuredLogger{logger: logger, sugar: logger.Sugar()}
}

func (l *StructuredLogger) Verbose(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *StructuredLogger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *StructuredLogger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes buffered entries.
func (l *StructuredLogger) Sync() error {
	return l.logger.Sync()
}

// New returns the logger for a --log-format value, writing to stderr.
func New(format string, verbose bool) (tenantload.Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return NewConsoleLogger(verbose), nil
	case FormatJSON:
		return NewStructuredLogger(os.Stderr, verbose), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (expected text or json): %w", format, tenantload.ErrInvalidConfig)
	}
}

var (
	_ tenantload.Logger = (*ConsoleLogger)(nil)
	_ tenantload.Logger = (*StructuredLogger)(nil)
	_ tenantload.Logger = (*NullLogger)(nil)
)
