package providers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/public"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	errUtils "github.com/fabric-cli/fab/errors"
	log "github.com/fabric-cli/fab/pkg/logger"
	"github.com/fabric-cli/fab/pkg/ui/theme"
)

// deviceCodeTimeout bounds how long fab waits for the user to finish signing in.
const deviceCodeTimeout = 15 * time.Minute

// isTTY checks if stderr is a terminal.
func isTTY() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// acquireTokenByDeviceCode runs the device code flow. It prints the code,
// then waits behind a spinner on terminals or blocks quietly otherwise.
func acquireTokenByDeviceCode(ctx context.Context, client publicClient, scopes []string) (public.AuthResult, error) {
	authCtx, cancel := context.WithTimeout(ctx, deviceCodeTimeout)
	defer cancel()

	deviceCode, err := client.AcquireTokenByDeviceCode(authCtx, scopes)
	if err != nil {
		return public.AuthResult{}, fmt.Errorf("failed to start device code flow: %w", err)
	}

	tty := isTTY()
	displayDeviceCodePrompt(os.Stderr, deviceCode.Result.UserCode, deviceCode.Result.VerificationURL, tty)

	if !tty {
		return deviceCode.AuthenticationResult(authCtx)
	}

	resultCh := make(chan signInResult, 1)
	go func() {
		result, err := deviceCode.AuthenticationResult(authCtx)
		resultCh <- signInResult{result: result, err: err}
	}()

	model := newSignInModel(deviceCode.Result.UserCode, deviceCode.Result.ExpiresOn, waitForSignIn(resultCh))
	final, err := tea.NewProgram(model, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return public.AuthResult{}, fmt.Errorf("failed to show sign-in progress: %w", err)
	}
	return final.(signInModel).outcome()
}

// displayDeviceCodePrompt shows the code and URL the user needs.
func displayDeviceCodePrompt(w io.Writer, userCode, verificationURL string, styled bool) {
	log.Debug("Displaying device code prompt", "url", verificationURL)

	if !styled {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "To sign in, open %s and enter the code %s\n", verificationURL, userCode)
		fmt.Fprintln(w)
		return
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorCyan))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorGray))
	codeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ColorGreen)).
		Background(lipgloss.Color("#1a1a1a")).
		Padding(0, 2)
	urlStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorBlue))

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Sign in to Fabric"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s  %s\n", labelStyle.Render("Code:"), codeStyle.Render(userCode))
	fmt.Fprintf(w, "%s  %s\n", labelStyle.Render("URL: "), urlStyle.Render(verificationURL))
	fmt.Fprintln(w)
}

// signInResult is the outcome of polling for the device code sign-in.
type signInResult struct {
	result public.AuthResult
	err    error
}

func waitForSignIn(ch <-chan signInResult) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

// signInModel shows the pending device code and the time left before it
// expires until the poll finishes or the user presses Ctrl-C or Esc.
type signInModel struct {
	spinner   spinner.Model
	userCode  string
	expiresOn time.Time
	now       func() time.Time
	wait      tea.Cmd

	done      *signInResult
	cancelled bool
}

func newSignInModel(userCode string, expiresOn time.Time, wait tea.Cmd) signInModel {
	return signInModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorCyan))),
		),
		userCode:  userCode,
		expiresOn: expiresOn,
		now:       time.Now,
		wait:      wait,
	}
}

func (m signInModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait)
}

func (m signInModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signInResult:
		m.done = &msg
		return m, tea.Quit
	case tea.KeyMsg:
		if key := msg.String(); key == "ctrl+c" || key == "esc" {
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m signInModel) View() string {
	if m.cancelled || m.done != nil {
		if m.done != nil && m.done.err == nil {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorGreen)).Render(theme.IconSuccess) + " Signed in\n"
		}
		return ""
	}

	line := fmt.Sprintf("%s Waiting for sign-in with code %s", m.spinner.View(), m.userCode)
	if left := m.expiresOn.Sub(m.now()).Round(time.Second); !m.expiresOn.IsZero() && left > 0 {
		line += lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorGray)).Render(fmt.Sprintf(" (expires in %s)", left))
	}
	return line + "\n"
}

// outcome is what the device code flow returns once the program exits. A
// program that exits without a poll result counts as cancelled.
func (m signInModel) outcome() (public.AuthResult, error) {
	if m.cancelled || m.done == nil {
		return public.AuthResult{}, errUtils.New(errUtils.ErrAuthenticationCancelled, errUtils.StatusOperationCancelled, "Authentication cancelled")
	}
	return m.done.result, m.done.err
}
