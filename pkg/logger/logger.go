package logger

import (
	"bytes"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	log *zap.Logger
	buf *lockedBuffer
}

type config struct {
	level   zapcore.Level
	out     io.Writer
	capture bool
}

type Option func(*config)

func WithLevel(level zapcore.Level) Option {
	return func(c *config) { c.level = level }
}

// WithOutput replaces stdout as the console sink.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.out = w }
}

// WithCapture keeps a copy of every line in memory so it can be shown by HTML().
func WithCapture() Option {
	return func(c *config) { c.capture = true }
}

func New(opts ...Option) *Logger {
	cfg := config{level: zap.InfoLevel, out: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(cfg.out), cfg.level),
	}

	l := &Logger{}
	if cfg.capture {
		l.buf = &lockedBuffer{}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(l.buf), cfg.level))
	}

	l.log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	return l
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{log: zap.NewNop()}
}

// ParseLevel falls back to info for unknown names.
func ParseLevel(s string) zapcore.Level {
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m" // Cyan
	case zapcore.InfoLevel:
		colorCode = "\033[32m" // Green
	case zapcore.WarnLevel:
		colorCode = "\033[33m" // Yellow
	case zapcore.ErrorLevel:
		colorCode = "\033[31m" // Red
	default:
		colorCode = "\033[0m"
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}

// With returns a child logger sharing the capture buffer.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{log: l.log.With(fields...), buf: l.buf}
}

func (l *Logger) Zap() *zap.Logger { return l.log }

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.log.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.log.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.log.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.log.Error(msg, fields...) }

func (l *Logger) Sync() error { return l.log.Sync() }

// HTML renders the captured lines. Empty when capture is off.
func (l *Logger) HTML() string {
	if l.buf == nil {
		return ""
	}
	return ansiToHTML(l.buf.String())
}

func (l *Logger) ClearLogs() {
	if l.buf != nil {
		l.buf.Reset()
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *lockedBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}
