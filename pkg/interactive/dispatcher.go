package interactive

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE

import (
	"context"
	"io"

	"github.com/chzyer/readline"
)

// Dispatcher runs CLI commands on behalf of the shell.
type Dispatcher interface {
	// HasCommand reports whether name is a top-level command.
	HasCommand(name string) bool
	// Dispatch runs args, command name first, writing to stdout and stderr.
	Dispatch(ctx context.Context, args []string, stdout, stderr io.Writer) error
	// Help writes the command overview to w.
	Help(w io.Writer)
}

// LineReader reads one line of input at a time.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

const historyLimit = 500

// NewReadline returns a LineReader with line editing and in-memory history.
func NewReadline(stdout, stderr io.Writer) (LineReader, error) {
	return readline.NewEx(&readline.Config{
		HistoryLimit:      historyLimit,
		HistorySearchFold: true,
		InterruptPrompt:   "^C",
		Stdout:            stdout,
		Stderr:            stderr,
	})
}
