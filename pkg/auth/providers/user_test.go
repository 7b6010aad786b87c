package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/public"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/fabric-cli/fab/errors"
)

type fakePublicClient struct {
	accounts       []public.Account
	silentErr      error
	interactiveErr error
	silentAccount  string
	interactive    int
}

func (f *fakePublicClient) Accounts(context.Context) ([]public.Account, error) {
	return f.accounts, nil
}

func (f *fakePublicClient) AcquireTokenSilent(_ context.Context, _ []string, _ ...public.AcquireSilentOption) (public.AuthResult, error) {
	if f.silentErr != nil {
		return public.AuthResult{}, f.silentErr
	}
	return public.AuthResult{AccessToken: "silent", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func (f *fakePublicClient) AcquireTokenInteractive(context.Context, []string, ...public.AcquireInteractiveOption) (public.AuthResult, error) {
	f.interactive++
	if f.interactiveErr != nil {
		return public.AuthResult{}, f.interactiveErr
	}
	return public.AuthResult{AccessToken: "interactive"}, nil
}

func (f *fakePublicClient) AcquireTokenByDeviceCode(context.Context, []string, ...public.AcquireByDeviceCodeOption) (public.DeviceCode, error) {
	return public.DeviceCode{}, errors.New("not used")
}

func newTestUserCredential(client *fakePublicClient, browser bool) (*userCredential, *int) {
	deviceCalls := 0
	return &userCredential{
		client:  client,
		browser: func() bool { return browser },
		deviceCode: func(context.Context, publicClient, []string) (public.AuthResult, error) {
			deviceCalls++
			return public.AuthResult{AccessToken: "device"}, nil
		},
	}, &deviceCalls
}

var fabricScope = policy.TokenRequestOptions{Scopes: []string{"https://api.fabric.microsoft.com/.default"}}

func TestGetTokenSilent_NoAccount(t *testing.T) {
	c, _ := newTestUserCredential(&fakePublicClient{}, true)
	_, err := c.GetTokenSilent(context.Background(), fabricScope)
	assert.ErrorIs(t, err, ErrNoCachedAccount)
}

func TestGetToken_SilentFirst(t *testing.T) {
	client := &fakePublicClient{accounts: []public.Account{{PreferredUsername: "someone"}}}
	c, device := newTestUserCredential(client, true)

	tok, err := c.GetToken(context.Background(), fabricScope)
	require.NoError(t, err)
	assert.Equal(t, "silent", tok.Token)
	assert.Zero(t, client.interactive)
	assert.Zero(t, *device)
}

func TestGetToken_BrowserThenDeviceCode(t *testing.T) {
	tests := []struct {
		name           string
		browser        bool
		interactiveErr error
		expected       string
		deviceCalls    int
	}{
		{"browser sign-in", true, nil, "interactive", 0},
		{"browser fails", true, errors.New("no browser"), "device", 1},
		{"headless", false, nil, "device", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakePublicClient{interactiveErr: tt.interactiveErr}
			c, device := newTestUserCredential(client, tt.browser)

			tok, err := c.GetToken(context.Background(), fabricScope)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tok.Token)
			assert.Equal(t, tt.deviceCalls, *device)
		})
	}
}

func TestGetTokenSilent_PrefersTenantAccount(t *testing.T) {
	client := &fakePublicClient{accounts: []public.Account{
		{PreferredUsername: "other", Realm: "aaaa"},
		{PreferredUsername: "match", Realm: "bbbb"},
	}}
	c, _ := newTestUserCredential(client, false)
	c.tenantID = "bbbb"

	tok, err := c.GetTokenSilent(context.Background(), fabricScope)
	require.NoError(t, err)
	assert.Equal(t, "silent", tok.Token)
}

func TestSignInModel(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	newModel := func() signInModel {
		m := newSignInModel("ABCD-1234", now.Add(90*time.Second), nil)
		m.now = func() time.Time { return now }
		return m
	}

	t.Run("waiting shows code and expiry", func(t *testing.T) {
		view := ansi.Strip(newModel().View())
		assert.Contains(t, view, "Waiting for sign-in with code ABCD-1234")
		assert.Contains(t, view, "(expires in 1m30s)")
	})

	t.Run("expired code hides countdown", func(t *testing.T) {
		m := newModel()
		m.now = func() time.Time { return now.Add(time.Hour) }
		assert.NotContains(t, m.View(), "expires in")
	})

	t.Run("poll result quits", func(t *testing.T) {
		updated, cmd := newModel().Update(signInResult{result: public.AuthResult{AccessToken: "tok"}})
		require.NotNil(t, cmd)
		m := updated.(signInModel)
		assert.Contains(t, m.View(), "Signed in")

		result, err := m.outcome()
		require.NoError(t, err)
		assert.Equal(t, "tok", result.AccessToken)
	})

	t.Run("poll failure", func(t *testing.T) {
		updated, _ := newModel().Update(signInResult{err: errors.New("expired_token")})
		m := updated.(signInModel)
		assert.Empty(t, m.View())

		_, err := m.outcome()
		assert.EqualError(t, err, "expired_token")
	})

	for _, key := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		t.Run("cancel with "+key.String(), func(t *testing.T) {
			updated, cmd := newModel().Update(key)
			require.NotNil(t, cmd)
			m := updated.(signInModel)
			assert.Empty(t, m.View())

			_, err := m.outcome()
			assert.ErrorIs(t, err, errUtils.ErrAuthenticationCancelled)
			assert.Equal(t, errUtils.StatusOperationCancelled, errUtils.StatusCode(err))
		})
	}

	t.Run("other keys are ignored", func(t *testing.T) {
		updated, cmd := newModel().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		assert.Nil(t, cmd)
		_, err := updated.(signInModel).outcome()
		assert.ErrorIs(t, err, errUtils.ErrAuthenticationCancelled, "no result yet")
	})
}

func TestWaitForSignIn(t *testing.T) {
	ch := make(chan signInResult, 1)
	ch <- signInResult{result: public.AuthResult{AccessToken: "tok"}}
	msg := waitForSignIn(ch)()
	assert.Equal(t, "tok", msg.(signInResult).result.AccessToken)
}
