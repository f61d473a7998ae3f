package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

type Logger struct {
	traceLogger *log.Logger
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	fatalLogger *log.Logger
}

func NewLogger(level Level, out io.Writer) *Logger {
	flag := log.LstdFlags | log.Lshortfile
	newLevelLogger := func(l Level) *log.Logger {
		if level < l {
			return nil
		}
		return log.New(out, l.String()+": ", flag)
	}
	return &Logger{
		traceLogger: newLevelLogger(LevelTrace),
		debugLogger: newLevelLogger(LevelDebug),
		infoLogger:  newLevelLogger(LevelInfo),
		warnLogger:  newLevelLogger(LevelWarn),
		errorLogger: newLevelLogger(LevelError),
		fatalLogger: newLevelLogger(LevelFatal),
	}
}

func (l *Logger) Trace(v ...any) {
	if l.traceLogger != nil {
		_ = l.traceLogger.Output(2, fmt.Sprintln(v...))
	}
}

func (l *Logger) Debug(v ...any) {
	if l.debugLogger != nil {
		_ = l.debugLogger.Output(2, fmt.Sprintln(v...))
	}
}

func (l *Logger) Info(v ...any) {
	if l.infoLogger != nil {
		_ = l.infoLogger.Output(2, fmt.Sprintln(v...))
	}
}

func (l *Logger) Warn(v ...any) {
	if l.warnLogger != nil {
		_ = l.warnLogger.Output(2, fmt.Sprintln(v...))
	}
}

func (l *Logger) Error(v ...any) {
	if l.errorLogger != nil {
		_ = l.errorLogger.Output(2, fmt.Sprintln(v...))
	}
}

// Fatal logs and exits. Only for unrecoverable startup failures.
func (l *Logger) Fatal(v ...any) {
	if l.fatalLogger != nil {
		_ = l.fatalLogger.Output(2, fmt.Sprintln(v...))
	}
	os.Exit(1)
}

func (l *Logger) Tracef(format string, v ...any) {
	if l.traceLogger != nil {
		_ = l.traceLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Debugf(format string, v ...any) {
	if l.debugLogger != nil {
		_ = l.debugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Infof(format string, v ...any) {
	if l.infoLogger != nil {
		_ = l.infoLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Warnf(format string, v ...any) {
	if l.warnLogger != nil {
		_ = l.warnLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Errorf(format string, v ...any) {
	if l.errorLogger != nil {
		_ = l.errorLogger.Output(2, fmt.Sprintf(format, v...))
	}
}
