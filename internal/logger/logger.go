package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Logger writes component-tagged lines to the console, coloured by level,
// and optionally mirrors them without colour to a file.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	file     *os.File
	minLevel Level
	exit     func(int)

	levelColors map[Level]*color.Color
	component   *color.Color
}

// NewLogger builds the process logger. When path is set every line is also
// appended, uncoloured, to that file.
func NewLogger(debug bool, path string) *Logger {
	l := New(os.Stdout, debug)

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			l.Warn("LOGGER", fmt.Sprintf("Could not open log file %s: %v", path, err))
		} else {
			l.file = f
		}
	}
	return l
}

// New returns a logger writing to w. Debug lines are dropped unless debug is set.
func New(w io.Writer, debug bool) *Logger {
	minLevel := LevelInfo
	if debug {
		minLevel = LevelDebug
	}
	return &Logger{
		out:      w,
		minLevel: minLevel,
		exit:     os.Exit,
		levelColors: map[Level]*color.Color{
			LevelDebug: color.New(color.FgHiBlack),
			LevelInfo:  color.New(color.FgGreen),
			LevelWarn:  color.New(color.FgYellow),
			LevelError: color.New(color.FgRed),
			LevelFatal: color.New(color.FgHiRed, color.Bold),
		},
		component: color.New(color.FgCyan),
	}
}

func (l *Logger) log(level Level, component, message string) {
	if level < l.minLevel {
		return
	}

	ts := time.Now().Format("2006-01-02 15:04:05.000")

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.out, "%s %s %s %s\n",
		ts,
		l.levelColors[level].Sprintf("%-5s", level),
		l.component.Sprintf("[%s]", component),
		message,
	)

	if l.file != nil {
		fmt.Fprintf(l.file, "%s %-5s [%s] %s\n", ts, level, component, message)
	}
}

func (l *Logger) Debug(component, message string) { l.log(LevelDebug, component, message) }
func (l *Logger) Info(component, message string)  { l.log(LevelInfo, component, message) }
func (l *Logger) Warn(component, message string)  { l.log(LevelWarn, component, message) }
func (l *Logger) Error(component, message string) { l.log(LevelError, component, message) }

// Fatal logs and terminates the process.
func (l *Logger) Fatal(component, message string) {
	l.log(LevelFatal, component, message)
	l.Close()
	l.exit(1)
}

func (l *Logger) LogProcess(step, message string) {
	l.Info(step, "⚙️  "+message)
}

func (l *Logger) LogDatabase(operation, driver, message string) {
	l.Info("DB:"+driver, fmt.Sprintf("%s %s", operation, message))
}

func (l *Logger) LogKafka(operation, topic, message string) {
	l.Info("KAFKA:"+topic, fmt.Sprintf("%s %s", operation, message))
}

func (l *Logger) LogAPI(method, path, status, duration string) {
	l.Info("API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

func (l *Logger) LogPayment(operation, reference, message string) {
	l.Info("PAYMENT", fmt.Sprintf("%s [%s] %s", operation, reference, message))
}

func (l *Logger) LogBooking(operation, reference, message string) {
	l.Info("BOOKING", fmt.Sprintf("%s [%s] %s", operation, reference, message))
}

func (l *Logger) LogMail(operation, recipient, message string) {
	l.Info("MAIL", fmt.Sprintf("%s <%s> %s", operation, recipient, message))
}

func (l *Logger) LogSecurity(event, message string) {
	l.Warn("SECURITY", fmt.Sprintf("%s %s", event, message))
}

// Close releases the mirror file, if any.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}
