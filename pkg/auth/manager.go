package auth

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE

import (
	"context"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/fabric-cli/fab/pkg/auth/jwt"
	"github.com/fabric-cli/fab/pkg/auth/providers"
	"github.com/fabric-cli/fab/pkg/auth/store"
	"github.com/fabric-cli/fab/pkg/auth/types"
	log "github.com/fabric-cli/fab/pkg/logger"
)

// AuthManager is what commands and the interactive shell need from the auth
// subsystem.
type AuthManager interface {
	GetAccessToken(ctx context.Context, scope types.Scope, interactiveRenew bool) (string, error)
	GetTokenClaims(ctx context.Context, scope types.Scope, names []string) (map[string]string, error)
	IdentityType() types.IdentityType
	TenantID() string
	Logout() error
	SetAccessMode(mode types.IdentityType, tenantID string) error
	SetTenant(tenantID string) error
	SetSPN(ctx context.Context, clientID string, secret SPNSecret) error
	SetManagedIdentity(ctx context.Context, clientID string) error
	Info() store.IdentityConfig
}

// Settings is the part of the settings store logout touches.
type Settings interface {
	Reset(keys ...string) error
}

// SPNSecret carries the service principal credential for one session. It is
// never persisted. Exactly one form must be set; Password doubles as the
// certificate password when CertPath is set.
type SPNSecret struct {
	Password        string
	CertPath        string
	ClientAssertion string
}

// Options configures a Manager.
type Options struct {
	Store     *store.Store
	Settings  Settings
	Factory   providers.Factory
	CachePath string
	// Decoder defaults to one that fetches keys from the stored tenant's authority.
	Decoder *jwt.Decoder
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// Manager owns the identity configuration and the single credential handle
// of the process. It is built once at startup and passed to whoever needs
// tokens.
type Manager struct {
	store      *store.Store
	settings   Settings
	factory    providers.Factory
	decoder    *jwt.Decoder
	cachePath  string
	lookupEnv  func(string) (string, bool)
	credential azcore.TokenCredential
}

var _ AuthManager = (*Manager)(nil)

// NewManager validates the FAB_* environment and applies any identity it
// describes. Misconfigured environments fail here, before a token is
// requested.
func NewManager(opts Options) (*Manager, error) {
	m := &Manager{
		store:     opts.Store,
		settings:  opts.Settings,
		factory:   opts.Factory,
		decoder:   opts.Decoder,
		cachePath: opts.CachePath,
		lookupEnv: opts.LookupEnv,
	}
	if m.lookupEnv == nil {
		m.lookupEnv = os.LookupEnv
	}
	if m.decoder == nil {
		m.decoder = jwt.NewDecoder(func() string {
			return types.Authority(m.TenantID())
		})
	}

	if err := validateEnvironment(m.lookupEnv); err != nil {
		return nil, err
	}
	if err := m.loadEnvironment(context.Background()); err != nil {
		return nil, err
	}

	log.Debug("Auth manager ready", "identity_type", m.IdentityType(), "tenant", m.TenantID())
	return m, nil
}

// IdentityType returns the configured identity type, IdentityNone when
// logged out.
func (m *Manager) IdentityType() types.IdentityType {
	return m.store.Identity().IdentityType
}

// TenantID returns the stored tenant, or "".
func (m *Manager) TenantID() string {
	return m.store.Identity().TenantID
}

// Info returns the stored identity configuration.
func (m *Manager) Info() store.IdentityConfig {
	return m.store.Identity()
}
