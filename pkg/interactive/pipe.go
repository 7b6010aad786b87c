package interactive

import (
	"context"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// pipeIndex returns the index of the first "|" outside quotes and not
// escaped by a backslash, or -1.
func pipeIndex(line string) int {
	inSingle, inDouble := false, false
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '\\' && i+1 < len(line):
			i++
		case c == '\'' && !inDouble:
			inSingle = !inSingle
		case c == '"' && !inSingle:
			inDouble = !inDouble
		case c == '|' && !inSingle && !inDouble:
			return i
		}
	}
	return -1
}

// HasPipe reports whether line pipes a command into a shell command.
func HasPipe(line string) bool {
	return pipeIndex(line) >= 0
}

// SplitPipe splits line at the first unquoted, unescaped "|". Both sides are
// trimmed. When there is no pipe, cli is the trimmed line and ok is false.
func SplitPipe(line string) (cli, shell string, ok bool) {
	i := pipeIndex(line)
	if i < 0 {
		return strings.TrimSpace(line), "", false
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
}

// runShell runs command with the POSIX shell interpreter, reading stdin and
// writing to stdout and stderr.
func runShell(ctx context.Context, command string, stdin io.Reader, stdout, stderr io.Writer) error {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return err
	}

	runner, err := interp.New(
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(stdin, stdout, stderr),
	)
	if err != nil {
		return err
	}
	return runner.Run(ctx, file)
}
