package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level string
	// File enables size-rotated file output instead of stdout.
	File   string
	Output io.Writer
}

type Logger struct {
	l      *logrus.Logger
	closer io.Closer
}

func New(conf Config) *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true}) //nolint:exhaustruct

	level, err := logrus.ParseLevel(conf.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	l.SetLevel(level)

	//nolint:exhaustruct
	logger := &Logger{l: l}

	switch {
	case conf.Output != nil:
		l.SetOutput(conf.Output)
	case conf.File != "":
		rotated := &lumberjack.Logger{
			Filename:   conf.File,
			MaxSize:    10, //nolint:gomnd
			MaxBackups: 3,  //nolint:gomnd
			LocalTime:  true,
		}
		l.SetOutput(rotated)
		logger.closer = rotated
	default:
		l.SetOutput(os.Stdout)
	}

	return logger
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.l.Errorf(format, v...)
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.l.Infof(format, v...)
}

func (l *Logger) LogDebug(format string, v ...any) {
	l.l.Debugf(format, v...)
}

func (l *Logger) WithField(key string, value any) *Entry {
	return &Entry{e: l.l.WithField(key, value)}
}

// Writer exposes the logger to code expecting an io.Writer, such as the
// http.Server error log.
func (l *Logger) Writer() *io.PipeWriter {
	return l.l.WriterLevel(logrus.ErrorLevel)
}

func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}

	return l.closer.Close()
}

type Entry struct {
	e *logrus.Entry
}

func (e *Entry) WithField(key string, value any) *Entry {
	return &Entry{e: e.e.WithField(key, value)}
}

func (e *Entry) LogInfo(format string, v ...any) {
	e.e.Infof(format, v...)
}

func (e *Entry) LogErrorf(format string, v ...any) {
	e.e.Errorf(format, v...)
}
