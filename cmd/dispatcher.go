package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/fabric-cli/fab/pkg/interactive"
)

// commandDispatcher runs shell lines through a fresh command tree, so flag
// values never leak from one line into the next.
type commandDispatcher struct {
	app *App
}

var _ interactive.Dispatcher = (*commandDispatcher)(nil)

func (d *commandDispatcher) HasCommand(name string) bool {
	return findSubcommand(NewRootCmd(d.app), name) != nil
}

func (d *commandDispatcher) Dispatch(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd(d.app)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (d *commandDispatcher) Help(w io.Writer) {
	root := NewRootCmd(d.app)
	root.SetOut(w)
	_ = root.Usage()
}

func findSubcommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return c
		}
	}
	return nil
}
