package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	errUtils "github.com/fabric-cli/fab/errors"
	"github.com/fabric-cli/fab/pkg/ui/theme"
)

// Output formats accepted by --output_format and the output_format setting.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Status values of the JSON envelope.
const (
	StatusSuccess = "Success"
	StatusFailure = "Failure"
)

// Envelope is the JSON shape of every response printed with --output_format json.
type Envelope struct {
	Status    string   `json:"status"`
	Result    any      `json:"result,omitempty"`
	ErrorCode string   `json:"error_code,omitempty"`
	Message   string   `json:"message,omitempty"`
	Hints     []string `json:"hints,omitempty"`
}

// Output writes user-facing text. Data goes to Out, decoration and diagnostics
// go to Err. Commands receive their Output from cobra's streams so the
// interactive shell can capture them.
type Output struct {
	out    io.Writer
	err    io.Writer
	format string
	styles *theme.StyleSet
}

// New returns an Output writing to out and err in the given format.
func New(out, err io.Writer, format string) *Output {
	if out == nil {
		out = os.Stdout
	}
	if err == nil {
		err = os.Stderr
	}
	if format != FormatJSON {
		format = FormatText
	}
	return &Output{out: out, err: err, format: format, styles: theme.Styles()}
}

// Out returns the data stream.
func (o *Output) Out() io.Writer { return o.out }

// Err returns the diagnostics stream.
func (o *Output) Err() io.Writer { return o.err }

// Format returns the active output format.
func (o *Output) Format() string { return o.format }

// Styles returns the style set used for decoration.
func (o *Output) Styles() *theme.StyleSet { return o.styles }

// Print writes msg followed by a newline to Out.
func (o *Output) Print(msg string) {
	fmt.Fprintln(o.out, msg)
}

// Printf formats and writes to Out.
func (o *Output) Printf(format string, args ...any) {
	fmt.Fprintf(o.out, format, args...)
}

// PrintGrey writes a dimmed line to Err.
func (o *Output) PrintGrey(msg string) {
	fmt.Fprintln(o.err, o.styles.Muted.Render(msg))
}

// PrintWarning writes a warning line to Err.
func (o *Output) PrintWarning(msg string) {
	fmt.Fprintln(o.err, o.styles.Warning.Render(theme.IconWarning+" "+msg))
}

// PrintSuccess reports a completed operation. In JSON mode it prints a
// success envelope carrying msg.
func (o *Output) PrintSuccess(msg string) {
	if o.format == FormatJSON {
		o.writeJSON(Envelope{Status: StatusSuccess, Message: msg})
		return
	}
	fmt.Fprintln(o.out, o.styles.Success.Render(theme.IconSuccess)+" "+msg)
}

// PrintResult prints a command result. Text mode uses the text callback;
// JSON mode wraps result in a success envelope.
func (o *Output) PrintResult(result any, text func(w io.Writer)) {
	if o.format == FormatJSON {
		o.writeJSON(Envelope{Status: StatusSuccess, Result: result})
		return
	}
	text(o.out)
}

// PrintError reports err. JSON mode prints a failure envelope to Out; text
// mode prints the message and any hints to Err.
func (o *Output) PrintError(err error) {
	if err == nil {
		return
	}
	hints := errUtils.Hints(err)
	if o.format == FormatJSON {
		o.writeJSON(Envelope{
			Status:    StatusFailure,
			ErrorCode: errUtils.StatusCode(err),
			Message:   errUtils.Message(err),
			Hints:     hints,
		})
		return
	}

	fmt.Fprintln(o.err, o.styles.Error.Render(theme.IconError+" "+errUtils.Message(err)))
	for _, hint := range hints {
		fmt.Fprintln(o.err, o.styles.Muted.Render("  "+strings.TrimSpace(hint)))
	}
}

func (o *Output) writeJSON(v Envelope) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(o.err, err.Error())
		return
	}
	fmt.Fprintln(o.out, string(data))
}
