package observe

import (
	"io"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log formats accepted by LoggerOptions.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// TimestampLayout is the layout of the "timestamp" field of every entry.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Logger struct {
	appEnv  string
	appName string
	l       *zap.Logger
}

// LoggerOptions tunes NewZapLogger. The zero value logs everything in UTC.
type LoggerOptions struct {
	Env   string
	Level string
	// Format is "json" (default) or "console".
	Format string
	Zone   *time.Location
}

// NewZapLogger builds a logger that fans out to writers, or stdout when
// none are given. Entries are JSON unless opts.Format is "console".
func NewZapLogger(appName string, opts LoggerOptions, writers ...io.Writer) *Logger {
	var syncers []zapcore.WriteSyncer
	if len(writers) == 0 {
		syncers = append(syncers, os.Stdout)
	}
	for _, w := range writers {
		syncers = append(syncers, zapcore.AddSync(w))
	}

	zone := opts.Zone
	if zone == nil {
		zone = time.UTC
	}

	level := zapcore.DebugLevel
	if opts.Level != "" {
		if lvl, err := zapcore.ParseLevel(opts.Level); err == nil {
			level = lvl
		}
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = timeEncoder(TimestampLayout, zone)

	encoder := zapcore.NewJSONEncoder(enc)
	if opts.Format == FormatConsole {
		encoder = zapcore.NewConsoleEncoder(enc)
	}

	core := zapcore.NewCore(
		encoder,
		zapcore.NewMultiWriteSyncer(syncers...),
		level,
	)

	return &Logger{
		appEnv:  opts.Env,
		appName: appName,
		l:       zap.New(core),
	}
}

// NewNopLogger discards everything. Handy in tests.
func NewNopLogger() *Logger {
	return &Logger{l: zap.NewNop()}
}

func (l *Logger) Stop() error {
	return l.l.Sync()
}

func (l *Logger) Error(err error, fields ...map[string]any) {
	if err == nil {
		return
	}
	l.write(zapcore.ErrorLevel, err.Error(), fields,
		zap.String("error", err.Error()),
		zap.Stack("stack"),
	)
}

func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.write(zapcore.InfoLevel, msg, fields)
}

func (l *Logger) Warning(msg string, fields ...map[string]any) {
	l.write(zapcore.WarnLevel, msg, fields)
}

func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.write(zapcore.DebugLevel, msg, fields)
}

// Fatal logs and exits the process.
func (l *Logger) Fatal(msg string, fields ...map[string]any) {
	l.write(zapcore.FatalLevel, msg, fields)
}

func (l *Logger) write(level zapcore.Level, msg string, fields []map[string]any, extra ...zap.Field) {
	ce := l.l.Check(level, msg)
	if ce == nil {
		return
	}

	file, line, funcName := callerParams()
	zf := []zap.Field{
		zap.String("app_env", l.appEnv),
		zap.String("app_name", l.appName),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
	}
	zf = append(zf, extra...)
	if len(fields) > 0 {
		zf = append(zf, mapToZapFields(fields[0])...)
	}
	ce.Write(zf...)
}

func mapToZapFields(data map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(data))
	for k, v := range data {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return zapFields
}

// callerParams skips write and the exported level method.
func callerParams() (file string, line int, funcName string) {
	pc, file, line, ok := runtime.Caller(3)
	if !ok {
		return "not_defined", 0, "not_defined"
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = fn.Name()
	}
	return file, line, funcName
}

func timeEncoder(layout string, location *time.Location) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(location).Format(layout))
	}
}
