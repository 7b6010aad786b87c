package interactive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"
	"mvdan.cc/sh/v3/interp"

	errUtils "github.com/fabric-cli/fab/errors"
	log "github.com/fabric-cli/fab/pkg/logger"
	"github.com/fabric-cli/fab/pkg/ui"
	"github.com/fabric-cli/fab/pkg/version"
)

// Messages printed by the shell.
const (
	WelcomeMessage     = "\nWelcome to the Fabric CLI ⚡"
	HelpHintMessage    = "Type 'help' for help. \n"
	ExitMessage        = "Exiting interactive mode. Goodbye!"
	AlreadyRunning     = "Interactive mode is already running."
	InterruptMessage   = "\nUse 'quit' or 'exit' to leave interactive mode."
	FabPrefixMessage   = "In interactive mode, commands don't require the fab prefix. Use --help to view the list of supported commands."
	pipeErrorPrefix    = "Error running pipe command: "
	sessionErrorPrefix = "Error in interactive session: "
	criticalPrefix     = "\nCritical error in interactive mode: "
)

var (
	quitCommands    = []string{"quit", "q", "exit"}
	helpCommands    = []string{"help", "h", "-h", "--help"}
	versionCommands = []string{"version", "v", "-v", "--version"}
)

// Options configures a Shell.
type Options struct {
	Dispatcher Dispatcher
	Output     *ui.Output
	// Path returns the current hierarchy path shown in the prompt.
	Path func() string
	// NewReader opens the line reader when the shell starts. Defaults to
	// NewReadline on the output streams.
	NewReader func() (LineReader, error)
	// BeforeCommand runs before every line is handled.
	BeforeCommand func()
}

// Shell is the interactive REPL. Commands run through the same dispatcher
// as the command line; a "|" pipes a command's output into a shell command.
type Shell struct {
	dispatcher    Dispatcher
	out           *ui.Output
	path          func() string
	newReader     func() (LineReader, error)
	beforeCommand func()

	running bool
	history []string
}

// New creates a Shell.
func New(opts Options) *Shell {
	s := &Shell{
		dispatcher:    opts.Dispatcher,
		out:           opts.Output,
		path:          opts.Path,
		newReader:     opts.NewReader,
		beforeCommand: opts.BeforeCommand,
	}
	if s.out == nil {
		s.out = ui.New(nil, nil, ui.FormatText)
	}
	if s.path == nil {
		s.path = func() string { return "/" }
	}
	if s.newReader == nil {
		s.newReader = func() (LineReader, error) {
			return NewReadline(s.out.Out(), s.out.Err())
		}
	}
	return s
}

// History returns the lines entered so far, oldest first.
func (s *Shell) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Running reports whether Start is in progress.
func (s *Shell) Running() bool {
	return s.running
}

// Prompt renders the prompt for the current path.
func (s *Shell) Prompt() string {
	st := s.out.Styles()
	path := "/" + strings.Trim(s.path(), "/")
	return st.Prompt.Render("fab") + st.Muted.Render(":") + st.Context.Render(path) + st.Muted.Render("$") + " "
}

// Start runs the read-eval-print loop until quit, EOF or a fatal error.
// Calling Start while the shell is running only prints a notice.
func (s *Shell) Start(ctx context.Context) error {
	if s.running {
		s.out.Print(AlreadyRunning)
		return nil
	}
	s.running = true
	defer func() { s.running = false }()

	reader, err := s.newReader()
	if err != nil {
		return err
	}
	defer reader.Close()

	defer func() {
		if r := recover(); r != nil {
			log.Debug("Interactive shell panicked", "panic", r)
			s.out.Print(fmt.Sprintf("%s%v", criticalPrefix, r))
			s.out.Print(ExitMessage)
		}
	}()

	s.out.Print(WelcomeMessage)
	s.out.Print(HelpHintMessage)

	for {
		reader.SetPrompt(s.Prompt())
		line, err := reader.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			s.out.Print(InterruptMessage)
			continue
		case errors.Is(err, io.EOF):
			s.out.Print("\n" + ExitMessage)
			return nil
		case err != nil:
			s.out.Print(sessionErrorPrefix + err.Error())
			return nil
		}

		s.history = append(s.history, line)
		if s.HandleCommand(ctx, line) {
			return nil
		}
	}
}

// HandleCommand runs one line of input and reports whether the shell should
// exit. Command failures are printed, never returned.
func (s *Shell) HandleCommand(ctx context.Context, line string) bool {
	if s.beforeCommand != nil {
		s.beforeCommand()
	}
	return s.handle(ctx, line)
}

func (s *Shell) handle(ctx context.Context, line string) bool {
	if HasPipe(line) {
		if cli, shell, _ := SplitPipe(line); cli != "" && shell != "" {
			if isBuiltin(cli) {
				return s.handle(ctx, cli)
			}
			log.Debug("Piping interactive command", "shell", shell)
			s.runPipe(ctx, cli, shell)
			return false
		}
	}

	if exit, handled := s.runBuiltin(line); handled {
		return exit
	}

	args, err := shellquote.Split(line)
	if err != nil {
		s.out.PrintError(parseError(line, err))
		return false
	}
	s.dispatch(ctx, args, line)
	return false
}

func isBuiltin(line string) bool {
	trimmed := strings.TrimSpace(line)
	return lo.Contains(quitCommands, line) || lo.Contains(helpCommands, line) ||
		lo.Contains(versionCommands, line) || trimmed == "fab" || trimmed == ""
}

// runBuiltin handles the shell's own commands. Matching is against the raw
// line, so "quit " is not quit.
func (s *Shell) runBuiltin(line string) (exit, handled bool) {
	switch {
	case lo.Contains(quitCommands, line):
		s.out.Print(ExitMessage)
		return true, true
	case lo.Contains(helpCommands, line):
		s.dispatcher.Help(s.out.Out())
		return false, true
	case lo.Contains(versionCommands, line):
		s.out.Print(version.String())
		return false, true
	case strings.TrimSpace(line) == "fab":
		s.out.Print(FabPrefixMessage)
		return false, true
	case strings.TrimSpace(line) == "":
		return false, true
	}
	return false, false
}

// dispatch runs args through the dispatcher. Errors go to stderr in the
// active output format.
func (s *Shell) dispatch(ctx context.Context, args []string, line string) {
	if len(args) == 0 {
		return
	}
	if !s.dispatcher.HasCommand(args[0]) {
		s.out.PrintError(unknownCommand(line))
		return
	}
	s.run(ctx, args, s.out.Out(), s.out.Err())
}

func (s *Shell) run(ctx context.Context, args []string, stdout, stderr io.Writer) {
	log.Debug("Dispatching interactive command", "command", args[0], "args", len(args)-1)
	if err := s.dispatcher.Dispatch(ctx, args, stdout, stderr); err != nil {
		ui.New(stdout, stderr, s.out.Format()).PrintError(err)
	}
}

// runPipe runs the CLI command with its output captured, then feeds stdout
// followed by stderr to the shell command. An unknown command is reported on
// the terminal and the shell command does not run.
func (s *Shell) runPipe(ctx context.Context, cli, shell string) {
	args, err := shellquote.Split(cli)
	if err != nil {
		s.out.PrintError(parseError(cli, err))
		return
	}
	if len(args) == 0 {
		return
	}
	if !s.dispatcher.HasCommand(args[0]) {
		s.out.PrintError(unknownCommand(cli))
		return
	}

	var stdout, stderr bytes.Buffer
	s.run(ctx, args, &stdout, &stderr)
	s.pipeToShell(ctx, stdout.String()+stderr.String(), shell)
}

func (s *Shell) pipeToShell(ctx context.Context, input, command string) {
	var stdout, stderr bytes.Buffer
	err := runShell(ctx, command, strings.NewReader(input), &stdout, &stderr)

	if out := strings.TrimRight(stdout.String(), "\n"); out != "" {
		s.out.Print(out)
	}
	if msg := strings.TrimRight(stderr.String(), "\n"); msg != "" {
		s.out.PrintGrey(msg)
	}

	// A non-zero exit, like grep finding nothing, is the shell command's
	// own business.
	if _, isExit := interp.IsExitStatus(err); err != nil && !isExit {
		s.out.Print(pipeErrorPrefix + err.Error())
	}
}

func unknownCommand(line string) error {
	return errUtils.Newf(errUtils.ErrUnknownCommand, errUtils.StatusUnknownCommand,
		"invalid choice: '%s'. Type 'help' for available commands.", strings.TrimSpace(line))
}

func parseError(line string, err error) error {
	return errUtils.Build(errUtils.Newf(errUtils.ErrInvalidInput, errUtils.StatusInvalidInput,
		"Could not parse '%s': %s", strings.TrimSpace(line), err.Error())).
		WithHint("Check that quotes are balanced").
		Err()
}
