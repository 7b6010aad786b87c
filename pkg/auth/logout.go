package auth

import (
	"github.com/fabric-cli/fab/pkg/auth/tokencache"
	"github.com/fabric-cli/fab/pkg/config"
	log "github.com/fabric-cli/fab/pkg/logger"
)

// Logout forgets the identity and its credential, deletes the token cache
// and puts the session-scoped settings back to their defaults.
func (m *Manager) Logout() error {
	m.credential = nil

	if m.cachePath != "" {
		removed, err := tokencache.Delete(m.cachePath)
		if err != nil {
			return err
		}
		log.Debug("Token cache cleared", "path", m.cachePath, "removed", removed)
	}

	if err := m.store.Clear(); err != nil {
		return err
	}

	if m.settings != nil {
		if err := m.settings.Reset(config.LogoutResetKeys...); err != nil {
			return err
		}
	}

	log.Debug("Logged out")
	return nil
}
