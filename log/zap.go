package log

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

type (
	Level  = zapcore.Level
	Field  = zap.Field
	Option = zap.Option
)

const (
	DebugLevel = zap.DebugLevel
	InfoLevel  = zap.InfoLevel
	WarnLevel  = zap.WarnLevel
	ErrorLevel = zap.ErrorLevel
	FatalLevel = zap.FatalLevel
)

// field helpers. keeps callers free of zap imports.
var (
	Int      = zap.Int
	Int32    = zap.Int32
	Uint     = zap.Uint
	Uint32   = zap.Uint32
	String   = zap.String
	Bool     = zap.Bool
	Float    = zap.Float64
	Any      = zap.Any
	Time     = zap.Time
	Duration = zap.Duration

	WithCaller    = zap.WithCaller
	AddStacktrace = zap.AddStacktrace
	AddCallerSkip = zap.AddCallerSkip
)

func ErrorField(err error) Field {
	return zap.Error(err)
}

type Logger struct {
	l     *zap.Logger
	level Level
}

func (l *Logger) Debug(msg string, fields ...Field) { l.l.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.l.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.l.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.l.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.l.Fatal(msg, fields...) }

func (l *Logger) Debugf(format string, args ...any) { l.l.Sugar().Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.l.Sugar().Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.l.Sugar().Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.l.Sugar().Errorf(format, args...) }
func (l *Logger) Fatalf(format string, args ...any) { l.l.Sugar().Fatalf(format, args...) }

func (l *Logger) Debugw(msg string, keysAndValues ...any) {
	l.l.Sugar().Debugw(msg, keysAndValues...)
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name), level: l.level}
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{l: l.l.With(fields...), level: l.level}
}

func (l *Logger) Sync() error {
	return l.l.Sync()
}

// New creates a logger with a json encoder writing to w.
func New(w io.Writer, level Level, opts ...Option) *Logger {
	return newWithEncoder(w, level,
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), opts...)
}

// DevLogger creates a logger with a human readable console encoder.
func DevLogger(w io.Writer, level Level, opts ...Option) *Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return newWithEncoder(w, level, zapcore.NewConsoleEncoder(cfg), opts...)
}

func newWithEncoder(w io.Writer, level Level, enc zapcore.Encoder, opts ...Option) *Logger {
	if w == nil {
		panic("the writer is nil")
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return &Logger{l: zap.New(core, opts...), level: level}
}

// WithFilters wraps the logger's core with zapfilter rules, for example
// "debug:processing.* info:*". Invalid rules leave the logger unchanged.
func (l *Logger) WithFilters(rules string) *Logger {
	filter, err := zapfilter.ParseRules(rules)
	if err != nil {
		l.Warn("invalid log filter rules", String("rules", rules), ErrorField(err))
		return l
	}
	filtered := l.l.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapfilter.NewFilteringCore(core, filter)
	}))
	return &Logger{l: filtered, level: l.level}
}

func ParseLevel(text string) (Level, error) {
	return zapcore.ParseLevel(text)
}

var std = DevLogger(os.Stderr, InfoLevel)

func Default() *Logger {
	return std
}

// ResetDefault replaces the default logger used by the package level functions.
func ResetDefault(l *Logger) {
	std = l
}

func Debug(msg string, fields ...Field) { std.Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { std.Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { std.Warn(msg, fields...) }
func Error(msg string, fields ...Field) { std.Error(msg, fields...) }
func Fatal(msg string, fields ...Field) { std.Fatal(msg, fields...) }

func Fatalf(format string, args ...any) { std.Fatalf(format, args...) }

type ctxKey struct{}

// AddToContext stores the logger in the context.
func AddToContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// GetFromContext returns the logger stored in the context or the default one.
func GetFromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return std
}

func Sync() {
	if err := std.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "could not sync logger: %v\n", err)
	}
}
