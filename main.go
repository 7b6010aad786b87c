package main

import (
	"context"
	"os"

	"github.com/fabric-cli/fab/cmd"
	errUtils "github.com/fabric-cli/fab/errors"
	log "github.com/fabric-cli/fab/pkg/logger"
)

func main() {
	stop := cmd.HandleSignals(os.Stderr, errUtils.Exit)

	code := run()
	stop()
	errUtils.Exit(code)
}

// run executes fab and returns the process exit code. Errors are already
// printed by cmd.Execute.
func run() int {
	err := cmd.Execute(context.Background(), os.Args[1:])
	if err != nil {
		exitCode := errUtils.GetExitCode(err)
		log.Debug("Exiting with exit code", "code", exitCode)
		return exitCode
	}
	return errUtils.ExitCodeSuccess
}
