package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	errUtils "github.com/fabric-cli/fab/errors"
)

var handledSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT}

var signalNames = map[syscall.Signal]string{
	syscall.SIGINT:  "SIGINT",
	syscall.SIGTERM: "SIGTERM",
	syscall.SIGHUP:  "SIGHUP",
	syscall.SIGQUIT: "SIGQUIT",
}

// HandleSignals exits with 128+n on SIGINT, SIGTERM, SIGHUP or SIGQUIT after
// telling the user on stderr. The returned func stops listening.
func HandleSignals(stderr io.Writer, exit func(code int)) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, handledSignals...)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-ch:
			exitOnSignal(sig, stderr, exit)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}

func exitOnSignal(sig os.Signal, stderr io.Writer, exit func(int)) {
	s, ok := sig.(syscall.Signal)
	if !ok {
		fmt.Fprintf(stderr, "\n%s received, exiting gracefully...\n", sig)
		exit(errUtils.ExitCodeSignalBase + int(syscall.SIGINT))
		return
	}

	name, ok := signalNames[s]
	if !ok {
		name = fmt.Sprintf("Signal %d", int(s))
	}
	fmt.Fprintf(stderr, "\n%s received, exiting gracefully...\n", name)
	exit(errUtils.ExitCodeSignalBase + int(s))
}
