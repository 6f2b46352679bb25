package mylog

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MarcGrol/checkoutform/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGcloudLogger
	}
}

type structuredLogger struct {
	logger *zap.Logger
}

func newGcloudLogger(componentName string) Logger {
	return newStructuredLogger(componentName, os.Stdout)
}

// newStructuredLogger writes one JSON object per line in the format Cloud Logging parses.
func newStructuredLogger(componentName string, out io.Writer) structuredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "severity"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	// Cloud Logging adds the timestamp itself
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""
	encoderConfig.StacktraceKey = ""

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(out), zap.DebugLevel)

	return structuredLogger{
		logger: zap.New(core).With(zap.String("component", componentName)),
	}
}

func (l structuredLogger) Log(c context.Context, traceLabel string, severity Severity, format string, a ...any) {
	fields := []zap.Field{}
	if traceLabel != "" {
		fields = append(fields, zap.Any("logging.googleapis.com/labels", map[string]string{"form": traceLabel}))
	}
	if trace := mycontext.TraceFromContext(c); trace != "" {
		fields = append(fields, zap.String("logging.googleapis.com/trace", trace))
	}

	message := fmt.Sprintf(format, a...)

	switch severity {
	case SeverityDebug:
		l.logger.Debug(message, fields...)
	case SeverityWarn:
		l.logger.Warn(message, fields...)
	case SeverityError:
		l.logger.Error(message, fields...)
	default:
		l.logger.Info(message, fields...)
	}
}
