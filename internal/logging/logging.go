package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// The MCP protocol stream owns stdout, so every log line goes to stderr.
var logger = newLogger()

func newLogger() *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		zap.InfoLevel,
	)
	return zap.New(core)
}

// split separates printf arguments from structured zap fields so call sites
// can use either style: Info("fetched page %d", n) or Info("ready", zap.Int("tools", n)).
func split(args []interface{}) ([]interface{}, []zap.Field) {
	var printfArgs []interface{}
	var fields []zap.Field
	for _, arg := range args {
		if f, ok := arg.(zap.Field); ok {
			fields = append(fields, f)
			continue
		}
		printfArgs = append(printfArgs, arg)
	}
	return printfArgs, fields
}

func format(msg string, printfArgs []interface{}) string {
	if len(printfArgs) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, printfArgs...)
}

// Info logs an informational message
func Info(msg string, args ...interface{}) {
	printfArgs, fields := split(args)
	logger.Info(format(msg, printfArgs), fields...)
}

// Warn logs a warning message
func Warn(msg string, args ...interface{}) {
	printfArgs, fields := split(args)
	logger.Warn(format(msg, printfArgs), fields...)
}

// Error logs an error message
func Error(msg string, args ...interface{}) {
	printfArgs, fields := split(args)
	logger.Error(format(msg, printfArgs), fields...)
}

// Fatal logs a fatal message and exits the process
func Fatal(msg string, args ...interface{}) {
	printfArgs, fields := split(args)
	logger.Fatal(format(msg, printfArgs), fields...)
}

// Sync flushes any buffered log entries
func Sync() {
	_ = logger.Sync()
}
