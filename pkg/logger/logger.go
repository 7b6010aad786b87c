package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	charm "github.com/charmbracelet/log"

	"github.com/fabric-cli/fab/pkg/ui/theme"
)

// Level aliases keep callers off the charm import.
const (
	DebugLevel = charm.DebugLevel
	InfoLevel  = charm.InfoLevel
	WarnLevel  = charm.WarnLevel
	ErrorLevel = charm.ErrorLevel
)

// Level is a logging level.
type Level = charm.Level

// DebugLogFileName is the name of the debug log inside the logs directory.
const DebugLogFileName = "fab_debug.log"

// Logger wraps a charmbracelet logger and remembers where it writes.
type Logger struct {
	*charm.Logger
	file string
	f    *os.File
}

// NewLogger wraps l with the fab level styles.
func NewLogger(l *charm.Logger) *Logger {
	l.SetStyles(getLogStyles())
	return &Logger{Logger: l}
}

// File returns the path of the log file, or "" when logging to a stream.
func (l *Logger) File() string {
	return l.file
}

// Close closes the log file, if the logger owns one.
func (l *Logger) Close() error {
	if l.f == nil {
		return nil
	}
	f := l.f
	l.f = nil
	return f.Close()
}

// GetLevelString returns the lower-case level name.
func (l *Logger) GetLevelString() string {
	return l.GetLevel().String()
}

// Configure replaces the default logger. With debug enabled the logger writes
// at debug level to dir/fab_debug.log; otherwise warnings go to stderr. The
// file of the logger being replaced is closed.
func Configure(debug bool, dir string) (*Logger, error) {
	if !debug {
		l := NewLogger(charm.New(os.Stderr))
		l.SetLevel(WarnLevel)
		replaceDefault(l)
		return l, nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(dir, DebugLogFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewLogger(charm.NewWithOptions(f, charm.Options{ReportTimestamp: true}))
	l.SetLevel(DebugLevel)
	l.file = path
	l.f = f
	replaceDefault(l)
	return l, nil
}

func replaceDefault(l *Logger) {
	prev := Default()
	SetDefault(l)
	if prev != l {
		_ = prev.Close()
	}
}

// PrintLogFilePath tells the user where debug logs go, when they go to a file.
func PrintLogFilePath(w io.Writer) {
	if path := Default().File(); path != "" {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorGray))
		fmt.Fprintln(w, style.Render("'debug_enabled' is on ("+path+")"))
	}
}

func getLogStyles() *charm.Styles {
	styles := charm.DefaultStyles()
	styles.Levels[charm.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBU").
		Foreground(lipgloss.Color(theme.ColorCyan))
	styles.Levels[charm.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color(theme.ColorTeal))
	styles.Levels[charm.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color(theme.ColorYellow))
	styles.Levels[charm.ErrorLevel] = lipgloss.NewStyle().
		SetString("EROR").
		Foreground(lipgloss.Color(theme.ColorRed))
	return styles
}
